package sqlinline

const QInsertUser = `--sql 6524ea83-8f73-4f39-8a90-300bae456995
insert into users (id, email, name, role, password_hash, is_active, created_at, updated_at)
values ($1::uuid, lower($2::text), $3::text, $4::text, $5::text, $6::bool, $7::timestamptz, $7::timestamptz);
`

// QUpdateUser keeps the stored hash when $5 is empty.
const QUpdateUser = `--sql cc318889-2e8d-48d1-9a5a-a0a3edff79c2
update users
set email = lower($2::text),
    name = $3::text,
    role = $4::text,
    password_hash = coalesce(nullif($5::text, ''), password_hash),
    is_active = $6::bool,
    updated_at = $7::timestamptz
where id = $1::uuid
returning created_at;
`

const QDeleteUser = `--sql 85c5a8cc-03b5-45b4-97c5-cc3d5e5efdc2
delete from users where id = $1::uuid;
`

const QGetUserByID = `--sql d715a1c6-f25f-43e3-8d8e-8d027cc5bde9
select id::text, email, name, role, password_hash, is_active, created_at, updated_at
from users
where id = $1::uuid;
`

const QGetUserByEmail = `--sql f7453c57-1b58-49cd-8806-fe02d6685787
select id::text, email, name, role, password_hash, is_active, created_at, updated_at
from users
where email = lower($1::text);
`

const QListUsers = `--sql cffde357-4a9f-4f16-aec9-de10a07f42d7
select id::text, email, name, role, password_hash, is_active, created_at, updated_at
from users
order by created_at asc;
`
