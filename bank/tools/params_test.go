package tools

import (
	"encoding/json"
	"testing"
)

func TestIntParam(t *testing.T) {
	cases := []struct {
		name    string
		value   interface{}
		want    int64
		present bool
		wantErr bool
	}{
		{name: "absent", value: nil, present: false},
		{name: "int", value: 7, want: 7, present: true},
		{name: "int64", value: int64(7), want: 7, present: true},
		{name: "whole float", value: float64(7), want: 7, present: true},
		{name: "fractional float", value: 7.5, present: true, wantErr: true},
		{name: "json number", value: json.Number("42"), want: 42, present: true},
		{name: "numeric string", value: " 42 ", want: 42, present: true},
		{name: "non-numeric string", value: "lots", present: true, wantErr: true},
		{name: "bool", value: true, present: true, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := map[string]interface{}{}
			if tc.value != nil {
				params["key"] = tc.value
			}
			got, present, err := intParam(params, "key")
			if present != tc.present {
				t.Fatalf("present = %v, want %v", present, tc.present)
			}
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMissingParams(t *testing.T) {
	params := map[string]interface{}{
		"present": "value",
		"empty":   "",
		"nilval":  nil,
	}
	missing := missingParams(params, "present", "empty", "nilval", "absent")
	want := []string{"empty", "nilval", "absent"}
	if len(missing) != len(want) {
		t.Fatalf("got %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, missing[i], want[i])
		}
	}
}

func TestPaginationParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		limit, offset, err := paginationParams(map[string]interface{}{})
		if err != nil || limit != 10 || offset != 0 {
			t.Errorf("got limit=%d offset=%d err=%v, want 10/0", limit, offset, err)
		}
	})
	t.Run("explicit", func(t *testing.T) {
		limit, offset, err := paginationParams(map[string]interface{}{"limit": 5, "offset": 20})
		if err != nil || limit != 5 || offset != 20 {
			t.Errorf("got limit=%d offset=%d err=%v, want 5/20", limit, offset, err)
		}
	})
	t.Run("non-integer", func(t *testing.T) {
		if _, _, err := paginationParams(map[string]interface{}{"limit": "many"}); err == nil {
			t.Error("expected an error for a non-integer limit")
		}
	})
}

func TestValidISODate(t *testing.T) {
	valid := []string{"2025-01-01", "1999-12-31"}
	invalid := []string{"01/01/2025", "2025-13-01", "2025-1-1", "yesterday", ""}
	for _, d := range valid {
		if !validISODate(d) {
			t.Errorf("%q should be valid", d)
		}
	}
	for _, d := range invalid {
		if validISODate(d) {
			t.Errorf("%q should be invalid", d)
		}
	}
}
