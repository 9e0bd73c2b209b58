package logging

import (
	"log/slog"
	"testing"
)

func TestFieldKeysAreUnique(t *testing.T) {
	keys := []string{
		FieldError, FieldService, FieldVersion, FieldProvider, FieldRequestID,
		FieldPath, FieldMethod, FieldStatusCode, FieldCount, FieldDurationMS,
		FieldRunID, FieldEvent, FieldBatch, FieldPlayer, FieldStat, FieldTier, FieldKey,
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" {
			t.Fatalf("empty field key")
		}
		if seen[k] {
			t.Fatalf("duplicate field key %q", k)
		}
		seen[k] = true
	}
}

func TestWithCommon(t *testing.T) {
	cases := []struct {
		name    string
		service string
		version string
		want    []string
	}{
		{name: "both", service: "mlb-props-service", version: "v1", want: []string{FieldService, FieldVersion}},
		{name: "service only", service: "mlb-props-service", want: []string{FieldService}},
		{name: "neither"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := []slog.Attr{slog.String("existing", "x")}
			attrs := WithCommon(base, tc.service, tc.version)
			if len(attrs) != len(tc.want)+1 || attrs[0].Key != "existing" {
				t.Fatalf("unexpected attrs %+v", attrs)
			}
			for i, key := range tc.want {
				if attrs[i+1].Key != key {
					t.Fatalf("expected %s at %d, got %s", key, i+1, attrs[i+1].Key)
				}
			}
		})
	}
}
