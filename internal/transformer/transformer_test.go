package transformer

import (
	"reflect"
	"testing"

	"smartsales/pkg/records"
)

type setField struct {
	key string
	val any
}

func (t setField) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		r[t.key] = t.val
	}
	return in
}

type dropWithout struct{ key string }

func (t dropWithout) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, r := range in {
		if r[t.key] != nil {
			out = append(out, r)
		}
	}
	return out
}

func TestChainApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chain Chain
		in    []records.Record
		want  []records.Record
	}{
		{
			name:  "empty chain is identity",
			chain: nil,
			in:    []records.Record{{"a": "1"}},
			want:  []records.Record{{"a": "1"}},
		},
		{
			name:  "runs in order",
			chain: Chain{dropWithout{key: "region"}, setField{key: "region", val: "West"}},
			in:    []records.Record{{"region": "East"}, {"region": nil}},
			want:  []records.Record{{"region": "West"}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.chain.Apply(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}
