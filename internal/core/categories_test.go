package core

import "testing"

func TestCategorizeProduct(t *testing.T) {
	tests := []struct {
		product string
		want    Category
	}{
		{"Pollo entero", CategoryMeat},
		{"Lomo de cerdo", CategoryMeat},
		{"Leche semidesnatada", CategoryDairy},
		{"Formatge fresc", CategoryDairy},
		{"Tomates pera", CategoryProduce},
		{"Piña", CategoryProduce},
		{"Pan de molde", CategoryBakery},
		{"Agua mineral 1.5L", CategoryDrinks},
		{"Detergente Ariel", CategoryCleaning},
		{"Pilas AAA", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			if got := CategorizeProduct(tt.product); got != tt.want {
				t.Errorf("CategorizeProduct(%q) = %q, want %q", tt.product, got, tt.want)
			}
		})
	}
}

func TestCategoriesComplete(t *testing.T) {
	seen := make(map[Category]bool)
	for _, c := range Categories {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
	if !seen[CategoryOther] {
		t.Error("Categories must include the fallback category")
	}
}
