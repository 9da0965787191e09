// Package assert holds constructor preconditions. A violated precondition is
// a programming error, not a runtime condition, so these panic.
package assert

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}
