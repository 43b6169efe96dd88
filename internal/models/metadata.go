package models

import "strings"

// Metadata is the platform-specific payload of an integration record. Values
// arrive either straight from an adapter (native Go types) or from the
// database (JSON-decoded), so the accessors accept both shapes. Numbers read
// back from the database are json.Number, not float64.
//
// Known keys per platform:
//
//	GitHub:   stars, forks, language, topics, isPrivate
//	Devfolio: position, teamSize, technologies, likes, views, prizeAmount
//	Coursera: instructor, duration, grade, provider, validUntil
type Metadata map[string]any

const (
	MetaLanguage     = "language"
	MetaTopics       = "topics"
	MetaTechnologies = "technologies"
)

// Language returns the primary language, ok is false when absent or blank.
func (m Metadata) Language() (string, bool) {
	value, ok := m[MetaLanguage].(string)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// Technologies reports ok whenever the key holds a list, even an empty one.
func (m Metadata) Technologies() ([]string, bool) {
	return m.stringList(MetaTechnologies)
}

func (m Metadata) Topics() ([]string, bool) {
	return m.stringList(MetaTopics)
}

func (m Metadata) stringList(key string) ([]string, bool) {
	switch values := m[key].(type) {
	case []string:
		return values, true
	case []any:
		list := make([]string, 0, len(values))
		for _, value := range values {
			if s, ok := value.(string); ok {
				list = append(list, s)
			}
		}
		return list, true
	default:
		return nil, false
	}
}
