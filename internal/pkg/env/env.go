package env

import (
	"encoding"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
)

var errNotStructPtr = errors.New("env: want a non-nil pointer to a struct")

var textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// OverrideStruct walks v, a pointer to a struct, and assigns every field tagged
// `env:"NAME"` from the non-empty variable NAME. Nested structs and nil struct pointers
// are walked too; nil pointers are allocated first. Fields whose pointer implements
// encoding.TextUnmarshaler are decoded with it. All bad values are reported together.
func OverrideStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", errNotStructPtr, v)
	}
	return walk(rv.Elem())
}

func walk(s reflect.Value) error {
	var errs []error

	for i := range s.NumField() {
		sf := s.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := s.Field(i)

		if name := sf.Tag.Get("env"); name != "" {
			raw, ok := os.LookupEnv(name)
			if !ok || raw == "" {
				continue
			}
			if err := assign(fv, raw); err != nil {
				errs = append(errs, fmt.Errorf("%s (%s): %w", sf.Name, name, err))
			}
			continue
		}

		switch {
		case fv.Kind() == reflect.Struct:
			errs = append(errs, walk(fv))
		case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct:
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			errs = append(errs, walk(fv.Elem()))
		}
	}

	return errors.Join(errs...)
}

func assign(fv reflect.Value, raw string) error {
	if reflect.PointerTo(fv.Type()).Implements(textUnmarshaler) {
		u, _ := fv.Addr().Interface().(encoding.TextUnmarshaler)
		return u.UnmarshalText([]byte(raw))
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}
