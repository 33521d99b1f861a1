package dbkit

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/orderkit/orderkit/orderkit"
)

// Sorter orders slices of structs in memory, for lists that don't come from a database.
// Order keys are matched to struct fields by Fields, or by field name ignoring case.
type Sorter struct {
	Fields map[string]string
	orders []orderColumn
}

// OrderBy appends a sort key. Invalid directions are ignored.
func (s *Sorter) OrderBy(column string, direction orderkit.Direction) {
	if o, ok := validOrder(column, direction); ok {
		s.orders = append(s.orders, o)
	}
}

// Sort sorts slice, a slice of structs or of pointers to structs, by the keys given to OrderBy.
// The sort is stable. Only exported fields can be sorted by, and a slice of pointers may not
// hold nil.
func (s *Sorter) Sort(slice interface{}) error {
	v := reflect.ValueOf(slice)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("dbkit: cannot sort %T, expected a slice", slice)
	}
	if len(s.orders) == 0 || v.Len() < 2 {
		return nil
	}

	elem := v.Type().Elem()
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("dbkit: cannot sort %T, expected a slice of structs", slice)
	}

	fields := make([][]int, len(s.orders))
	for i, o := range s.orders {
		field, err := s.field(elem, o.column)
		if err != nil {
			return err
		}
		if _, ok := compare(reflect.Zero(field.Type), reflect.Zero(field.Type)); !ok {
			return fmt.Errorf("dbkit: cannot order by %v.%v of type %v", elem, field.Name, field.Type)
		}
		fields[i] = field.Index
	}

	if v.Type().Elem().Kind() == reflect.Ptr {
		for i := 0; i < v.Len(); i++ {
			if v.Index(i).IsNil() {
				return fmt.Errorf("dbkit: cannot sort %T, element %v is nil", slice, i)
			}
		}
	}

	sort.SliceStable(slice, func(i, j int) bool {
		a, b := reflect.Indirect(v.Index(i)), reflect.Indirect(v.Index(j))
		for n, o := range s.orders {
			c, _ := compare(a.FieldByIndex(fields[n]), b.FieldByIndex(fields[n]))
			if c == 0 {
				continue
			}
			if o.direction == orderkit.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return nil
}

func (s *Sorter) field(t reflect.Type, column string) (reflect.StructField, error) {
	var field reflect.StructField
	var found bool
	if name, mapped := s.Fields[column]; mapped {
		field, found = t.FieldByName(name)
	} else {
		plain := strings.Replace(column, "_", "", -1)
		field, found = t.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, plain)
		})
	}

	switch {
	case !found:
		return field, fmt.Errorf("dbkit: %v has no field for order %v", t, column)
	case field.PkgPath != "":
		return field, fmt.Errorf("dbkit: cannot order by unexported field %v.%v", t, field.Name)
	}
	return field, nil
}

var timeType = reflect.TypeOf(time.Time{})

// compare returns -1, 0 or 1. ok is false for kinds that have no order.
func compare(a reflect.Value, b reflect.Value) (result int, ok bool) {
	if a.Type() == timeType {
		ta, tb := a.Interface().(time.Time), b.Interface().(time.Time)
		switch {
		case ta.Before(tb):
			return -1, true
		case ta.After(tb):
			return 1, true
		}
		return 0, true
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return sign(a.Int() < b.Int(), a.Int() > b.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return sign(a.Uint() < b.Uint(), a.Uint() > b.Uint()), true
	case reflect.Float32, reflect.Float64:
		return sign(a.Float() < b.Float(), a.Float() > b.Float()), true
	case reflect.String:
		return strings.Compare(a.String(), b.String()), true
	case reflect.Bool:
		return sign(!a.Bool() && b.Bool(), a.Bool() && !b.Bool()), true
	case reflect.Ptr:
		// nil sorts first
		switch {
		case a.IsNil() && b.IsNil():
			return 0, true
		case a.IsNil():
			return -1, true
		case b.IsNil():
			return 1, true
		}
		return compare(a.Elem(), b.Elem())
	}
	return 0, false
}

func sign(less bool, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
