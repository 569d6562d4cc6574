package service

import (
	"ghstats/internal/adapters/ingest/gharchive"
	perr "ghstats/internal/platform/errors"
	ptime "ghstats/internal/platform/time"
	"ghstats/internal/services/repostats/domain"
)

// IsValid reports whether rec counts toward the ranking. Checks run in order:
// event type, presence of repository url and pushed_at, then the window.
// A record of another type is rejected whatever else it holds. For a matching
// type, a repository, url or pushed_at of the wrong JSON kind or an
// unparsable pushed_at is a parse error, not a rejection
func IsValid(rec domain.Record, w domain.Window, eventName string) (bool, error) {
	_, ok, err := match(rec, w, eventName)
	return ok, err
}

// Accept runs IsValid and, for accepted records, derives the event the aggregate counts
func Accept(rec domain.Record, w domain.Window, eventName string) (domain.ValidatedEvent, bool, error) {
	url, ok, err := match(rec, w, eventName)
	if err != nil || !ok {
		return domain.ValidatedEvent{}, false, err
	}
	return domain.ValidatedEvent{RepoKey: gharchive.RepoKey(url)}, true, nil
}

// match applies the filter and returns the repository url of an accepted record
func match(rec domain.Record, w domain.Window, eventName string) (string, bool, error) {
	if rec.Type() != eventName {
		return "", false, nil
	}
	v, ok := rec.Lookup("repository")
	if !ok {
		return "", false, nil
	}
	obj, isObj := v.(map[string]any)
	if !isObj {
		return "", false, kindError("repository", "object", v)
	}
	repo := gharchive.Record(obj)

	url, ok, err := stringAt(repo, "url")
	if err != nil || !ok {
		return "", false, err
	}
	raw, ok, err := stringAt(repo, "pushed_at")
	if err != nil || !ok {
		return "", false, err
	}

	pushedAt, err := ptime.ParseInstant(raw)
	if err != nil {
		return "", false, perr.WithField(
			perr.Wrapf(err, perr.ErrorCodeParse, "repostats: bad pushed_at for %s", url),
			"repository.pushed_at",
		)
	}
	if !w.Contains(pushedAt) {
		return "", false, nil
	}
	return url, true, nil
}

// stringAt reads repository.<key>; missing or null is absent, any other non-string is an error
func stringAt(repo gharchive.Record, key string) (string, bool, error) {
	v, ok := repo.Lookup(key)
	if !ok {
		return "", false, nil
	}
	s, isStr := v.(string)
	if !isStr {
		return "", false, kindError("repository."+key, "string", v)
	}
	return s, true, nil
}

func kindError(path, want string, got any) error {
	return perr.WithField(
		perr.Parsef("repostats: %s is %s, want %s", path, gharchive.Kind(got), want),
		path,
	)
}
