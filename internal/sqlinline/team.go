package sqlinline

const QInsertTeamMember = `--sql 55d58f4f-c58e-436c-9355-8a944c87cce8
insert into team_members (id, name, position, bio, avatar_url, sort_order, is_active, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, $6::int, $7::bool, $8::timestamptz, $8::timestamptz);
`

const QUpdateTeamMember = `--sql 9f0ce10a-4fbe-4dbc-ba25-7a120c71c41d
update team_members
set name = $2::text,
    position = $3::text,
    bio = $4::text,
    avatar_url = $5::text,
    sort_order = $6::int,
    is_active = $7::bool,
    updated_at = $8::timestamptz
where id = $1::uuid
returning created_at;
`

const QDeleteTeamMember = `--sql a6fa6e58-3765-42a1-90d9-5530089c2032
delete from team_members where id = $1::uuid;
`

const QListTeamMembers = `--sql d1c59649-2d3f-4a5f-b3d2-0521e68f6ebb
select id::text, name, position, bio, avatar_url, sort_order, is_active, created_at, updated_at
from team_members
where (not $1::bool or is_active)
order by sort_order asc, name asc;
`
