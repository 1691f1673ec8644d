package payload

import (
	"sync"
)

const hex = "0123456789abcdef"

var alertBufSize = 512

var alertPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, alertBufSize)
		return &b
	},
}

// onlyBody reports whether the alert can be written in the short string form.
func (a Alert) onlyBody() bool {
	return a.Body != "" && (&a).Equal(&Alert{Body: a.Body})
}

// MarshalJSONFast renders the alert. An alert that only carries a body is
// written as a plain string, the form the OS uses for simple alerts.
func (a Alert) MarshalJSONFast() ([]byte, error) {
	if a.onlyBody() {
		return appendQuote(nil, a.Body), nil
	}

	ptr := alertPool.Get().(*[]byte)
	b := (*ptr)[:0]
	defer func() {
		*ptr = b
		alertPool.Put(ptr)
	}()

	first := true
	addComma := func() {
		if !first {
			b = append(b, ',')
		}
		first = false
	}
	addString := func(key, val string) {
		if val == "" {
			return
		}
		addComma()
		b = append(b, '"')
		b = append(b, key...)
		b = append(b, '"', ':')
		b = appendQuote(b, val)
	}
	addStringSlice := func(key string, vals []string) {
		if len(vals) == 0 {
			return
		}
		addComma()
		b = append(b, '"')
		b = append(b, key...)
		b = append(b, '"', ':', '[')
		for i, v := range vals {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendQuote(b, v)
		}
		b = append(b, ']')
	}

	b = append(b, '{')
	addString("title", a.Title)
	addString("subtitle", a.Subtitle)
	addString("body", a.Body)
	addString("launch-image", a.LaunchImage)
	addString("loc-key", a.LocKey)
	addStringSlice("loc-args", a.LocArgs)
	addString("title-loc-key", a.TitleLocKey)
	addStringSlice("title-loc-args", a.TitleLocArgs)
	addString("subtitle-loc-key", a.SubtitleLocKey)
	addStringSlice("subtitle-loc-args", a.SubtitleLocArgs)
	addString("action-loc-key", a.ActionLocKey)
	b = append(b, '}')

	return append([]byte(nil), b...), nil
}
