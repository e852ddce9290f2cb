package sqlinline

const QInsertHistoryEntry = `--sql 0f3a1b9c-54d2-4e87-a6f1-8b0c9d7e2f15
insert into history_entries (user_id, feature, ts, heading, category, source_text, job_id, caption)
values ($1, $2, $3, $4, $5, $6, $7, $8);
`

const QSelectHistoryEntries = `--sql 72c4e8d1-9f36-4ab5-8e07-1d5b3a6c9f28
select feature, heading, coalesce(category, ''), source_text, ts, job_id, coalesce(caption, '')
from history_entries
where user_id = $1 and feature = $2
order by ts desc;
`

const QDeleteHistoryEntry = `--sql b8d5f2a7-1c63-4e09-9a84-6f7e0b3d5c41
delete from history_entries
where user_id = $1 and feature = $2 and ts = $3;
`
