package sqlinline

const QGetContentBlock = `--sql 5f37db9b-4c0f-4e0f-96f2-192161dec8d7
select key, value, updated_at
from content_blocks
where key = $1::text;
`

const QListContentBlocks = `--sql 466bbed2-a6d4-4943-b949-e5b0fba9307a
select key, value, updated_at
from content_blocks
order by key asc;
`

const QUpsertContentBlock = `--sql 3d17033b-27aa-4cb4-af44-ceb1da2f900e
insert into content_blocks (key, value, updated_at)
values ($1::text, $2::jsonb, $3::timestamptz)
on conflict (key) do update set value = excluded.value, updated_at = excluded.updated_at;
`

const QListSettings = `--sql f7e8ffcc-a70e-4e58-9d2e-691e07741f5d
select key, value, updated_at
from settings
order by key asc;
`

// QUpsertSettings writes every pair in one statement: $1 keys, $2 JSON values.
const QUpsertSettings = `--sql a0e0f29e-5514-4b3a-9521-ec2b133ea9f0
insert into settings (key, value, updated_at)
select k, v::jsonb, $3::timestamptz
from unnest($1::text[], $2::text[]) as t(k, v)
on conflict (key) do update set value = excluded.value, updated_at = excluded.updated_at;
`
