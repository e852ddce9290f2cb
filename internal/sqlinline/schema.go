// Package sqlinline holds the SQL statements the store layer executes,
// grouped by area. Each statement carries a stable tag comment so slow-query
// logs can be traced back to the source constant.
package sqlinline

// Schema is the reference DDL for the record store. Applied out of band;
// kept here so the statements above have a single source of truth to read
// against.
const Schema = `--sql 4d9e6c1a-b2f8-45e3-8a07-3c5d1f9b6e82
create table if not exists users (
    id            uuid primary key,
    email         text not null unique,
    name          text not null default '',
    session_token text not null unique,
    locale_pref   text,
    content_ids   uuid[] not null default '{}',
    created_at    timestamptz not null default now(),
    updated_at    timestamptz not null default now()
);

create table if not exists content_details (
    id          uuid primary key,
    user_id     uuid not null references users(id),
    kind        text not null,
    asset_urls  text[] not null default '{}',
    archive_url text,
    caption     text,
    raw_payload jsonb not null default '{}'::jsonb,
    created_at  timestamptz not null default now()
);

create table if not exists content_summaries (
    content_id  uuid primary key references content_details(id),
    user_id     uuid not null references users(id),
    kind        text not null,
    headline    text not null default '',
    preview_url text,
    created_at  timestamptz not null default now()
);

create table if not exists history_entries (
    user_id     uuid not null references users(id),
    feature     text not null,
    ts          timestamptz not null,
    heading     text not null default '',
    category    text,
    source_text text not null default '',
    job_id      text not null default '',
    caption     text,
    primary key (user_id, feature, ts)
);

create index if not exists content_summaries_user_created_idx
    on content_summaries (user_id, created_at desc);
`
