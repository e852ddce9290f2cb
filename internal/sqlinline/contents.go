package sqlinline

const QInsertContentDetail = `--sql 5a0c6a2d-7de5-49e2-9a41-d9c3df5b1b6e
insert into content_details (id, user_id, kind, asset_urls, archive_url, caption, raw_payload, created_at)
values ($1, $2, $3, $4, $5, $6, $7, now());
`

const QInsertContentSummary = `--sql c1d2be7f-8a77-4f0e-bf64-2df1a3a9e45b
insert into content_summaries (content_id, user_id, kind, headline, preview_url, created_at)
values ($1, $2, $3, $4, $5, now());
`

const QSelectContentDetail = `--sql 9be03fb2-6a54-4df0-8c1e-0cf6d3ab7a9d
select id, user_id, kind, asset_urls, coalesce(archive_url, ''), coalesce(caption, ''), raw_payload, created_at
from content_details
where id = $1 and user_id = $2;
`

const QSelectContentSummaries = `--sql e4b6a7c8-3d21-4f5a-b890-7c2e5f1d0a34
select content_id, user_id, kind, headline, coalesce(preview_url, ''), created_at
from content_summaries
where user_id = $1
order by created_at desc;
`
