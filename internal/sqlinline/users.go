package sqlinline

const QSelectUserByEmail = `--sql 9d1d5b7c-20af-4f4e-8c33-6a9c4b8a54e2
select id, name, email, password_hash, is_admin, created_at
from users
where email = $1::text;
`

const QUpsertAdminUser = `--sql b5a7f6ee-4f0b-4c63-b7a9-0f0d2ad95c11
insert into users(id, name, email, password_hash, is_admin, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, true, now())
on conflict (email) do update
set name = excluded.name, password_hash = excluded.password_hash, is_admin = true
returning id;
`
