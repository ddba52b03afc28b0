package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// maxTopicLen - ограничение брокера на длину имени топика.
const maxTopicLen = 249

var topicNameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// TopicName - проверяет имя топика по правилам Kafka.
func TopicName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty topic name", ErrInvalid)
	case name == "." || name == "..":
		return fmt.Errorf("%w: topic name %q is reserved", ErrInvalid, name)
	case len(name) > maxTopicLen:
		return fmt.Errorf("%w: topic name longer than %d", ErrInvalid, maxTopicLen)
	case !topicNameRe.MatchString(name):
		return fmt.Errorf("%w: topic name %q contains illegal characters", ErrInvalid, name)
	}
	return nil
}

// Topics - нормализует набор топиков: обрезает пробелы, убирает дубликаты,
// сортирует. Пустой набор или любое невалидное имя → ErrInvalid.
func Topics(topics []string) ([]string, error) {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if err := TopicName(t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty topic set", ErrInvalid)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
