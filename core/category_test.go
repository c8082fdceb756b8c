package core

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"science", CategoryScience},
		{"  Technology ", CategoryTechnology},
		{"INNOVATION", CategoryInnovation},
		{"ciencia", CategoryScience},
		{"Tecnología", CategoryTechnology},
		{"innovacion", CategoryInnovation},
		{"entender", CategoryUnderstand},
		{"imaginar", CategoryImagine},
		{"probar", CategoryPrototype},
		{"prototype", CategoryPrototype},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	for _, bad := range []string{"", "none", "art", "category(9)"} {
		if _, err := ParseCategory(bad); !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("ParseCategory(%q) err = %v, want ErrUnknownCategory", bad, err)
		}
	}
}

func TestCategoryValidAndString(t *testing.T) {
	if CategoryNone.Valid() || CategoryCount.Valid() {
		t.Error("sentinels must not be valid")
	}
	for _, set := range [][]Category{ChestCategories, TokenCategories} {
		for _, c := range set {
			if !c.Valid() {
				t.Errorf("%s not valid", c)
			}
			if back, err := ParseCategory(c.String()); err != nil || back != c {
				t.Errorf("round trip of %s = %v, %v", c, back, err)
			}
		}
	}
	if got := Category(42).String(); got != "category(42)" {
		t.Errorf("unknown category string = %q", got)
	}
}

func TestCategoryYAML(t *testing.T) {
	var doc struct {
		Cats []Category `yaml:"cats"`
	}
	if err := yaml.Unmarshal([]byte("cats: [science, Probar]"), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Cats) != 2 || doc.Cats[0] != CategoryScience || doc.Cats[1] != CategoryPrototype {
		t.Errorf("decoded %v", doc.Cats)
	}
	if err := yaml.Unmarshal([]byte("cats: [art]"), &doc); err == nil {
		t.Error("expected error for unknown category")
	}
}
