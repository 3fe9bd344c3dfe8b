package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type payload struct {
	StockName string          `json:"stockName"`
	Price     decimal.Decimal `json:"price"`
	Count     int             `json:"count"`
	Tags      []string        `json:"tags"`
	Missing   *string         `json:"missing"`
}

var sample = payload{StockName: "Microsoft", Price: decimal.RequireFromString("150.25"), Count: 3, Tags: []string{"a", "b"}}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, "", false); err != nil {
		t.Fatal(err)
	}
	want := `{"stockName":"Microsoft","price":"150.25","count":3,"tags":["a","b"],"missing":null}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, "edn", false); err != nil {
		t.Fatal(err)
	}
	want := `{:count 3 :missing nil :price "150.25" :stock-name "Microsoft" :tags ["a" "b"]}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, map[string]any{"xs": []int{}}, "edn", true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\n  :xs []\n}\n" {
		t.Fatalf("pretty edn: %q", buf.String())
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, "yaml", false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"stockName: Microsoft", "count: 3", `price: "150.25"`, "- a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWrite_Unknown(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sample, "xml", false); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestKeyword(t *testing.T) {
	cases := map[string]string{"stockName": "stock-name", "id": "id", "plPercent": "pl-percent", "open qty": "open-qty"}
	for in, want := range cases {
		if got := keyword(in); got != want {
			t.Fatalf("keyword(%q) = %q, want %q", in, got, want)
		}
	}
}
