package util

import (
	"net/url"
	"sort"
	"strings"

	"jobsearch-engine/internal/domain"
)

// CanonicalizeURL lower-cases scheme and host, drops the fragment and
// tracking parameters, and sorts the query so equal links compare equal.
func CanonicalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "mc_cid" || lk == "mc_eid" ||
			lk == "mkt_tok" || lk == "gh_src" || lk == "lever-source" {
			q.Del(k)
		}
	}

	if strings.Contains(u.Host, "linkedin.com") {
		keep := url.Values{}
		if v := q.Get("currentJobId"); v != "" {
			keep.Set("currentJobId", v)
		}
		q = keep
	}

	// deterministic query
	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// DedupKey is the key an adapter already set, else the canonical URL, else
// TitleKey when the posting has no URL.
func DedupKey(p domain.Posting) string {
	if p.DedupKey != "" {
		return p.DedupKey
	}
	if k := CanonicalizeURL(p.URL); k != "" {
		return k
	}
	return TitleKey(p)
}

// TitleKey is "title|company" lower-cased.
func TitleKey(p domain.Posting) string {
	return strings.ToLower(strings.TrimSpace(p.Title) + "|" + strings.TrimSpace(p.Company))
}

// Origin returns scheme://host of raw, or "" if raw is not absolute.
func Origin(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// ResolveAgainstOrigin makes href absolute using the origin of page.
// Absolute hrefs are returned unchanged.
func ResolveAgainstOrigin(page, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(href), "http") {
		return href
	}
	origin := Origin(page)
	if origin == "" {
		return href
	}
	base, _ := url.Parse(origin + "/")
	ref, err := url.Parse(href)
	if err != nil {
		return origin + "/" + strings.TrimPrefix(href, "/")
	}
	return base.ResolveReference(ref).String()
}
