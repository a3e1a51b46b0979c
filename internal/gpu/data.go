package gpu

import (
	"fmt"
	"reflect"
)

// CheckData reports whether data can be passed as buffer contents of size
// bytes: nil, a slice holding at least size bytes, or a pointer to a single
// scalar value (the first element of a matrix or vector).
func CheckData(data interface{}, size int) error {
	if data == nil {
		return nil
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return nil
		}
		if have := v.Len() * int(v.Type().Elem().Size()); size > have {
			return fmt.Errorf("buffer size %d exceeds %d bytes of data", size, have)
		}
		return nil
	case reflect.Ptr:
		if v.IsNil() {
			return fmt.Errorf("nil %s", v.Type())
		}
		switch v.Elem().Kind() {
		case reflect.Bool, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return nil
		}
		return fmt.Errorf("unsupported pointer to %s; pass the first element", v.Elem().Kind())
	}
	return fmt.Errorf("unsupported buffer data of type %T", data)
}

// isEmpty is true for nil data and zero-length slices, which carry no
// address to upload from.
func isEmpty(data interface{}) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	return v.Kind() == reflect.Slice && v.Len() == 0
}
