package util

import (
	"strconv"
)

// ParseMaterialID 资料 ID 为 64 位，0 视为非法
func ParseMaterialID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
