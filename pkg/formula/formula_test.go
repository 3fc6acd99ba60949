package formula

import "testing"

func TestEval(t *testing.T) {
	fields := map[string]string{
		"quantity_on_hand": "40",
		"price":            "2.50",
		"status":           "active",
		"empty":            "",
	}

	tests := []struct {
		name       string
		expression string
		want       string
		wantErr    bool
	}{
		{"arithmetic", `fields["quantity_on_hand"] * fields["price"]`, "100", false},
		{"string field", `fields["status"]`, "active", false},
		{"conditional", `fields["quantity_on_hand"] > 10 ? "ok" : "low"`, "ok", false},
		{"empty field stays string", `fields["empty"]`, "", false},
		{"syntax error", `fields["price" +`, "", true},
		{"type mismatch", `fields["status"] - 2`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEvaluator(tt.expression).Eval(fields)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
