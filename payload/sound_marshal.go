package payload

import "strconv"

// MarshalJSONFast renders the sound. A non-critical sound without a volume is
// written as its plain name; anything else uses the dictionary form.
func (s Sound) MarshalJSONFast() ([]byte, error) {
	if s.Critical == 0 && s.Volume == 0 {
		return appendQuote(nil, s.Name), nil
	}

	b := make([]byte, 0, 64)
	b = append(b, '{')

	first := true
	addComma := func() {
		if !first {
			b = append(b, ',')
		}
		first = false
	}

	// critical
	if s.Critical != 0 {
		addComma()
		b = append(b, `"critical":`...)
		b = strconv.AppendInt(b, int64(s.Critical), 10)
	}

	// name
	if s.Name != "" {
		addComma()
		b = append(b, `"name":`...)
		b = appendQuote(b, s.Name)
	}

	// volume
	if s.Volume != 0 {
		addComma()
		b = append(b, `"volume":`...)
		b = strconv.AppendFloat(b, float64(s.Volume), 'f', -1, 64)
	}

	b = append(b, '}')

	return b, nil
}
