package packinglist

// Profile describes the header layout of one packing list format. Column
// names are matched case-insensitively after trimming.
type Profile struct {
	Name        string
	NameCol     string
	CostCol     string
	QuantityCol string // optional; rows without it count as one piece
}

// profiles are tried in order against every row until one matches a header.
var profiles = []Profile{
	{
		Name:        "padrão",
		NameCol:     "nome",
		CostCol:     "custo",
		QuantityCol: "quantidade",
	},
	{
		Name:        "fornecedor",
		NameCol:     "produto",
		CostCol:     "valor",
		QuantityCol: "qtd",
	},
	{
		Name:        "nota",
		NameCol:     "descrição",
		CostCol:     "valor unitário",
		QuantityCol: "quant.",
	},
}

// headerless is used when no row matches a profile header.
var headerless = Profile{Name: "sem cabeçalho"}
