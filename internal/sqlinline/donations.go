package sqlinline

const QInsertDonation = `--sql 7e59fcb9-0ac7-4233-8f7c-8a023aa7750a
insert into donations (id, activity_id, payment_method_id, name, amount, message, is_public, is_anonymous, is_confirmed, confirmed_at, created_at, updated_at)
values ($1::uuid, nullif($2::text, '')::uuid, nullif($3::text, '')::uuid, $4::text, $5::bigint, $6::text, $7::bool, $8::bool, $9::bool, $10::timestamptz, $11::timestamptz, $11::timestamptz);
`

const QGetDonation = `--sql 735842d8-10e0-4433-9126-3e005c026024
select id::text, activity_id::text, payment_method_id::text, name, amount, message, is_public, is_anonymous, is_confirmed, confirmed_at, reminded_at, created_at, updated_at
from donations
where id = $1::uuid;
`

// QListDonations filters: $1 activity id, $2 general only, $3 confirmed,
// $4 created before, $5 public only, $6 search, $7 since, $8 until, $9 limit, $10 offset.
const QListDonations = `--sql 969850a2-99e8-4681-ad8d-f5c971c2b277
select id::text, activity_id::text, payment_method_id::text, name, amount, message, is_public, is_anonymous, is_confirmed, confirmed_at, reminded_at, created_at, updated_at
from donations
where ($1::text is null or activity_id = $1::uuid)
  and (not $2::bool or activity_id is null)
  and ($3::bool is null or is_confirmed = $3::bool)
  and ($4::timestamptz is null or created_at <= $4::timestamptz)
  and (not $5::bool or is_public)
  and ($6::text = ''
       or strpos(lower(message), lower($6::text)) > 0
       or (strpos(lower(coalesce(name, '')), lower($6::text)) > 0 and not (is_anonymous and $5::bool)))
  and ($7::timestamptz is null or created_at >= $7::timestamptz)
  and ($8::timestamptz is null or created_at < $8::timestamptz)
order by created_at desc, id
limit nullif($9::int, 0) offset $10::int;
`

const QConfirmDonation = `--sql 89984fce-b8de-484b-9f8a-e48dda078cce
update donations
set is_confirmed = true,
    confirmed_at = coalesce(confirmed_at, $2::timestamptz),
    updated_at = case when is_confirmed then updated_at else $2::timestamptz end
where id = $1::uuid
returning id::text, activity_id::text, payment_method_id::text, name, amount, message, is_public, is_anonymous, is_confirmed, confirmed_at, reminded_at, created_at, updated_at;
`

const QDeleteDonation = `--sql b4eb8050-7e30-4ef5-8007-d06cd443b090
delete from donations where id = $1::uuid;
`

const QListOverdueUnreminded = `--sql ad9b8ae9-0320-4aac-9b22-652a93986e5f
select id::text, activity_id::text, payment_method_id::text, name, amount, message, is_public, is_anonymous, is_confirmed, confirmed_at, reminded_at, created_at, updated_at
from donations
where is_confirmed = false
  and reminded_at is null
  and created_at <= $1::timestamptz
order by created_at asc
limit $2::int;
`

const QMarkDonationReminded = `--sql dc9454e3-8f32-417c-a779-62f762838f03
update donations
set reminded_at = $2::timestamptz
where id = $1::uuid and reminded_at is null;
`
