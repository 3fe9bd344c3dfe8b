package main

import (
	"reflect"
	"testing"
)

func TestRewriteCashtagArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"tipdesk"},
			want: []string{"tipdesk"},
		},
		{
			name: "cashtag first token",
			in:   []string{"tipdesk", "$MSFT"},
			want: []string{"tipdesk", "stock", "MSFT"},
		},
		{
			name: "lowercase cashtag is upcased",
			in:   []string{"tipdesk", "$googl"},
			want: []string{"tipdesk", "stock", "GOOGL"},
		},
		{
			name: "cashtag after value flag",
			in:   []string{"tipdesk", "--data", "tips.db", "$AAPL"},
			want: []string{"tipdesk", "--data", "tips.db", "stock", "AAPL"},
		},
		{
			name: "cashtag after equals flag",
			in:   []string{"tipdesk", "--format=edn", "$AAPL"},
			want: []string{"tipdesk", "--format=edn", "stock", "AAPL"},
		},
		{
			name: "cashtag after bool flag keeps trailing flags",
			in:   []string{"tipdesk", "--pretty", "$TSLA", "--format", "yaml"},
			want: []string{"tipdesk", "--pretty", "stock", "TSLA", "--format", "yaml"},
		},
		{
			name: "cashtag after double dash",
			in:   []string{"tipdesk", "--", "$MSFT"},
			want: []string{"tipdesk", "--", "stock", "MSFT"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"tipdesk", "stock", "MSFT"},
			want: []string{"tipdesk", "stock", "MSFT"},
		},
		{
			name: "bare dollar not rewritten",
			in:   []string{"tipdesk", "$"},
			want: []string{"tipdesk", "$"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"tipdesk", "wat"},
			want: []string{"tipdesk", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteCashtagArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteCashtagArgs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
