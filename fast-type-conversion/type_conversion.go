package fasttypeconversion

import (
	"unsafe"
)

// String2Bytes 字符串快速转换成字节数组, 新变量共享底层数据指针.
// The result has cap == len and must never be written to; append on it always copies.
func String2Bytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Bytes2String 字节数组快速转换成字符串, 新变量共享底层数据指针.
// b must not be modified afterwards.
func Bytes2String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
