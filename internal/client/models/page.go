package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Page is the skip/limit pair accepted by list endpoints. Zero values are
// not sent.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) Values() url.Values {
	v := url.Values{}
	p.encode(v)
	return v
}

func (p Page) encode(v url.Values) {
	if p.Skip > 0 {
		v.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
}

// ParsePage reads "skip=N" and "limit=N" arguments.
func ParsePage(args []string) (Page, error) {
	var p Page
	err := parsePairs(args, p.set)
	return p, err
}

func (p *Page) set(k, v string) (bool, error) {
	var dst *int
	switch k {
	case "skip":
		dst = &p.Skip
	case "limit":
		dst = &p.Limit
	default:
		return false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return true, fmt.Errorf("%s must be a non-negative number", k)
	}
	*dst = n
	return true, nil
}

// parsePairs splits each arg on '=' and hands it to set, which reports
// whether it knew the key.
func parsePairs(args []string, set func(k, v string) (bool, error)) error {
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("filter %q must be key=value", a)
		}
		known, err := set(k, v)
		if err != nil {
			return err
		}
		if !known {
			return fmt.Errorf("unknown filter %q", k)
		}
	}
	return nil
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
