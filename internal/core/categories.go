package core

import "strings"

// Product categories for spend breakdowns. Keyword lists mix Spanish
// and Catalan stems because the source sheets do.

type Category string

const (
	CategoryMeat     Category = "carnes"
	CategoryDairy    Category = "lacteos"
	CategoryProduce  Category = "verdura"
	CategoryBakery   Category = "panaderia"
	CategoryDrinks   Category = "bebidas"
	CategoryCleaning Category = "limpieza"
	CategoryOther    Category = "otros"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryMeat, CategoryDairy, CategoryProduce,
	CategoryBakery, CategoryDrinks, CategoryCleaning, CategoryOther,
}

var categoryKeywords = []struct {
	cat   Category
	stems []string
}{
	{CategoryMeat, []string{
		"lomo", "poll", "pollo", "ternera", "cerdo", "bistec", "costilla",
		"jamon", "pernil", "hamburguesa", "salchicha", "butifarra", "choriz",
		"chuleta", "alitas", "muslo", "pechuga", "entrecot", "cinta", "llom",
		"cordero",
	}},
	{CategoryDairy, []string{
		"lech", "llet", "yogur", "queso", "formatge", "mantequilla", "mantega",
		"nata", "crema", "cuajada", "requeson", "gouda", "edam", "emmental",
		"mozzarella", "parmesan", "brie", "camembert", "roquefort",
	}},
	{CategoryProduce, []string{
		"tomat", "tomaq", "ceboll", "ceba", "ajo", "lechuga", "espinaca",
		"acelga", "zanahoria", "pastanag", "brocoli", "coliflor", "pimient",
		"pebr", "calabaza", "berenjena", "pepino", "calabac", "judia",
		"monget", "guisante", "lenteja", "garbanz", "fruta", "manzana",
		"naranja", "limon", "llimona", "platano", "banana", "fresa", "uva",
		"melon", "sandia", "pera", "kiwi", "mango", "pina",
	}},
	{CategoryBakery, []string{
		"pan", "harina", "farina", "galleta", "galeta", "bollo", "croissant",
		"pastel", "bizcocho", "tarta", "empanada", "pizza", "pasta",
		"macarron", "espagu", "fideo", "tallarin", "raviol", "canelon",
		"brioche",
	}},
	{CategoryDrinks, []string{
		"agua", "aigua", "refresc", "gaseosa", "cola", "zumo", "jugo",
		"nestea", "fanta", "sprite", "cerveza", "cerve", "vino", "cafe",
		"tonic", "whisky", "ron", "ginebra", "vodka", "cava", "champ",
		"licor", "batido",
	}},
	{CategoryCleaning, []string{
		"limpia", "detergente", "jabon", "gel", "champu", "shampoo",
		"colonia", "perfume", "desodorant", "papel higien", "toallita",
		"panal", "servillet", "escoba", "mopa", "fregona", "bayeta",
		"esponja", "lejia", "lavavajilla", "suavizant", "ambientador",
		"insecticida", "limpiacristal",
	}},
}

// CategorizeProduct assigns a product description to a category by
// stem containment, first match wins. Unmatched products land in
// CategoryOther.
func CategorizeProduct(product string) Category {
	if product == "" {
		return CategoryOther
	}
	name := NormalizeText(product)
	for _, group := range categoryKeywords {
		for _, stem := range group.stems {
			if strings.Contains(name, stem) {
				return group.cat
			}
		}
	}
	return CategoryOther
}
