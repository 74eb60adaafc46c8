package menu

import "maps"

// Example is the built-in sample week applied by FillExample.
var Example = Data{
	"segunda": {Lunch: "Arroz, feijão, frango grelhado, salada", Dinner: "Sopa de legumes + torradas"},
	"terca":   {Lunch: "Macarrão ao sugo com carne moída", Dinner: "Omelete de queijo e salada"},
	"quarta":  {Lunch: "Peixe assado, purê de batata", Dinner: "Sanduíche natural"},
	"quinta":  {Lunch: "Strogonoff de frango + arroz", Dinner: "Crepioca recheada"},
	"sexta":   {Lunch: "Chili com arroz", Dinner: "Pizza caseira"},
	"sabado":  {Lunch: "Feijoada leve", Dinner: "Hambúrguer artesanal"},
	"domingo": {Lunch: "Lasanha", Dinner: "Sushi / Temaki"},
}

// FillExample overlays the sample week onto m. Sample values win; other keys
// of m are kept as they are.
func FillExample(m Data) Data {
	out := maps.Clone(m)
	if out == nil {
		out = make(Data, len(Example))
	}
	maps.Copy(out, Example)
	return out
}
