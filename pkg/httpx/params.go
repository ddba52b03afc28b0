package httpx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

var ErrBadParam = errors.New("bad query parameter")

// ClampInt - ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseCount - читает count из query. Пустое значение даёт def;
// нечисловое или вне [1, max] - ErrBadParam.
func ParseCount(c *gin.Context, def, max int) (int, error) {
	raw, ok := c.GetQuery("count")
	if !ok || raw == "" {
		return ClampInt(def, 1, max), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: count=%q is not a number", ErrBadParam, raw)
	}
	if v < 1 || v > max {
		return 0, fmt.Errorf("%w: count=%d out of range 1..%d", ErrBadParam, v, max)
	}
	return v, nil
}
