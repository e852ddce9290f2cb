package sqlinline

const QSelectUserBySessionToken = `--sql 8f1f7f0a-42cf-4a06-9ab0-55b9c2f0d3a1
select id, email, name, coalesce(locale_pref, '') as locale_pref, created_at, updated_at
from users
where session_token = $1
limit 1;
`

const QAppendUserContentID = `--sql 3a6d9a5e-11e4-4c1f-8d17-6f0c4f28b7c2
update users
set content_ids = array_append(content_ids, $2::uuid),
    updated_at  = now()
where id = $1;
`
