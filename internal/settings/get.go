package settings

// Values decoded from JSON are float64 for every number; the getters accept
// the integer kinds too so compiled defaults built in Go behave the same.

func GetInt(d Document, key string, def int) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	}
	return def
}

func GetFloat(d Document, key string, def float64) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func GetBool(d Document, key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

func GetString(d Document, key string, def string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return def
}

// Section returns the object stored under key, or an empty document.
func Section(d Document, key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	}
	return Document{}
}
