package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "wikiquiz"

	quizService    = "quiz"
	quizRecordType = "record"
)

// GenerateCacheKey joins prefix, service, object type and identifier with ":".
// Extra params are joined by "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return baseKey + ":" + strings.Join(paramsKey, "_")
	}
	return baseKey
}

// QuizRecordKey is the key a stored quiz record is cached under.
func QuizRecordKey(id int64) string {
	return GenerateCacheKey(quizService, quizRecordType, strconv.FormatInt(id, 10))
}
