package sqlinline

const QInsertDonation = `--sql 3f6f3a1e-8f0d-4bb0-9a56-1d2c2cf3b7a1
insert into donations(id, donor_name, donor_email, amount, currency, message, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::numeric, $4::text, $5::text, now())
returning id, created_at;
`

const QListDonations = `--sql 64c0a9d7-52e3-4f4f-9a0f-8be4f6f0c2d9
select id, donor_name, donor_email, amount, currency, message, created_at
from donations
order by created_at desc;
`
