package sqlinline

const QInsertPaymentMethod = `--sql aae19c8f-7bd2-490b-b04e-90d8e9a2d6f0
insert into payment_methods (id, type, name, account_name, account_number, branch, qr_image_url, instructions, is_active, sort_order, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, $6::text, $7::text, $8::text, $9::bool, $10::int, $11::timestamptz, $11::timestamptz);
`

const QUpdatePaymentMethod = `--sql 6458142f-edbe-4942-bd48-5c458d228ca7
update payment_methods
set type = $2::text,
    name = $3::text,
    account_name = $4::text,
    account_number = $5::text,
    branch = $6::text,
    qr_image_url = $7::text,
    instructions = $8::text,
    is_active = $9::bool,
    sort_order = $10::int,
    updated_at = $11::timestamptz
where id = $1::uuid
returning created_at;
`

const QDeletePaymentMethod = `--sql 28f59142-b467-439e-b02c-b4f05bed6644
delete from payment_methods where id = $1::uuid;
`

const QListPaymentMethods = `--sql 2d9a82fe-9d89-4f7c-a669-aa0cf4b1d974
select id::text, type, name, account_name, account_number, branch, qr_image_url, instructions, is_active, sort_order, created_at, updated_at
from payment_methods
where (not $1::bool or is_active)
order by sort_order asc, name asc;
`
