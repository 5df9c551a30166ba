package sqlinline

const QInsertActivity = `--sql b7fa4d13-4137-441c-8ff1-e74187e0f1b9
insert into activities (id, title, slug, location, trip_date, category, description, content, images, is_published, is_upcoming, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::date, $6::text, $7::text, $8::text, coalesce($9::jsonb, '[]'::jsonb), $10::bool, $11::bool, $12::timestamptz, $12::timestamptz);
`

const QUpdateActivity = `--sql 7d6c77ad-25c6-4a43-acca-14d0abf2f224
update activities
set title = $2::text,
    slug = $3::text,
    location = $4::text,
    trip_date = $5::date,
    category = $6::text,
    description = $7::text,
    content = $8::text,
    images = coalesce($9::jsonb, '[]'::jsonb),
    is_published = $10::bool,
    is_upcoming = $11::bool,
    updated_at = $12::timestamptz
where id = $1::uuid
returning created_at;
`

const QDeleteActivity = `--sql 9a8fcbeb-6c9d-4a6d-917e-6f09b9928f84
delete from activities where id = $1::uuid;
`

const QGetActivityByID = `--sql 653426cd-51bb-49cd-bee9-1eb23a74acdd
select id::text, title, slug, location, trip_date, category, description, content, images, is_published, is_upcoming, created_at, updated_at
from activities
where id = $1::uuid;
`

const QGetActivityBySlug = `--sql 171e6ca2-7c51-4725-a5c7-34fc914dd2dc
select id::text, title, slug, location, trip_date, category, description, content, images, is_published, is_upcoming, created_at, updated_at
from activities
where slug = $1::text;
`

const QListActivities = `--sql 59526b90-7659-4f85-b43b-48c62d47afb7
select id::text, title, slug, location, trip_date, category, description, content, images, is_published, is_upcoming, created_at, updated_at
from activities
where ($1::bool is null or is_published = $1::bool)
  and ($2::bool is null or is_upcoming = $2::bool)
  and ($3::text = '' or category = $3::text)
order by coalesce(trip_date, created_at::date) desc, created_at desc;
`
