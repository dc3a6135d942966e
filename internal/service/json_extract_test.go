package service

import "testing"

func TestFirstJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "以下が結果です\n```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`},
		{"brace in string", `{"a":"}x"}`, `{"a":"}x"}`},
		{"no object", "ただのテキスト", ""},
		{"unbalanced", `{"a":1`, ""},
	}
	for _, tc := range cases {
		if got := firstJSONObject(tc.in); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
