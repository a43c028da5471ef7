package colour

// vietnameseEntries are the colour names staff use on product records. They
// are registered before the CSS names, so they win reverse lookups.
var vietnameseEntries = []Entry{
	{Name: "đen", Hex: "#000000"},
	{Name: "trắng", Hex: "#FFFFFF"},
	{Name: "đỏ", Hex: "#FF0000"},
	{Name: "đỏ đô", Hex: "#800000"},
	{Name: "đỏ tươi", Hex: "#DC143C"},
	{Name: "xanh dương", Hex: "#0000FF"},
	{Name: "xanh navy", Hex: "#000080"},
	{Name: "xanh da trời", Hex: "#87CEEB"},
	{Name: "xanh lá", Hex: "#008000"},
	{Name: "xanh lá mạ", Hex: "#00FF00"},
	{Name: "xanh rêu", Hex: "#556B2F"},
	{Name: "xanh ngọc", Hex: "#40E0D0"},
	{Name: "xanh cổ vịt", Hex: "#008080"},
	{Name: "xanh mint", Hex: "#98FF98"},
	{Name: "vàng", Hex: "#FFFF00"},
	{Name: "vàng gold", Hex: "#FFD700"},
	{Name: "vàng nghệ", Hex: "#E3A857"},
	{Name: "cam", Hex: "#FFA500"},
	{Name: "hồng", Hex: "#FFC0CB"},
	{Name: "hồng phấn", Hex: "#FFB6C1"},
	{Name: "hồng đậm", Hex: "#FF1493"},
	{Name: "tím", Hex: "#800080"},
	{Name: "tím than", Hex: "#4B0082"},
	{Name: "nâu", Hex: "#8B4513"},
	{Name: "nâu đất", Hex: "#A0522D"},
	{Name: "cà phê", Hex: "#6F4E37"},
	{Name: "xám", Hex: "#808080"},
	{Name: "ghi", Hex: "#A9A9A9"},
	{Name: "bạc", Hex: "#C0C0C0"},
	{Name: "be", Hex: "#F5F5DC"},
	{Name: "kem", Hex: "#FFFDD0"},
	{Name: "kaki", Hex: "#F0E68C"},
	{Name: "đồng", Hex: "#B87333"},
	{Name: "rượu vang", Hex: "#722F37"},
}
