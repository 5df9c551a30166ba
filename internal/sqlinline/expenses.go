package sqlinline

const QInsertExpense = `--sql 05bddebc-e0c6-4c56-9665-ddc910505cbb
insert into expenses (id, activity_id, title, amount, category, description, created_at, updated_at)
values ($1::uuid, nullif($2::text, '')::uuid, $3::text, $4::bigint, nullif($5::text, ''), $6::text, $7::timestamptz, $7::timestamptz);
`

const QUpdateExpense = `--sql b23059dc-3be5-4f74-a885-363f99ce2780
update expenses
set activity_id = nullif($2::text, '')::uuid,
    title = $3::text,
    amount = $4::bigint,
    category = nullif($5::text, ''),
    description = $6::text,
    updated_at = $7::timestamptz
where id = $1::uuid
returning created_at;
`

const QDeleteExpense = `--sql a6df2f7d-45aa-460b-bd4b-6368cacc9855
delete from expenses where id = $1::uuid;
`

const QGetExpense = `--sql da5efbc0-73d4-4194-b99b-141e2982dc22
select id::text, activity_id::text, title, amount, category, description, created_at, updated_at
from expenses
where id = $1::uuid;
`

const QListExpenses = `--sql 02bbe0a9-5855-4048-9b0a-918d51fcffea
select id::text, activity_id::text, title, amount, category, description, created_at, updated_at
from expenses
where ($1::text is null or activity_id = $1::uuid)
  and (not $7::bool or activity_id is null)
  and ($2::text = ''
       or btrim(coalesce(category, '')) = $2::text
       or ($8::bool and btrim(coalesce(category, '')) = ''))
  and ($3::timestamptz is null or created_at >= $3::timestamptz)
  and ($4::timestamptz is null or created_at < $4::timestamptz)
order by created_at desc, id
limit nullif($5::int, 0) offset $6::int;
`
