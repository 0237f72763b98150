package dataset

import "fmt"

// ValidationError 数据集信封、字段或数量校验失败，发生在任何写库之前
type ValidationError struct {
	Family string
	Row    int // 出错行下标，整体校验时为 -1
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("dataset %s: row %d: %s", e.Family, e.Row, e.Reason)
	}
	return fmt.Sprintf("dataset %s: %s", e.Family, e.Reason)
}

func invalid(family string, row int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Family: family, Row: row, Reason: fmt.Sprintf(format, args...)}
}
