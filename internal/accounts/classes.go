package accounts

// basClassNames maps two-digit BAS account classes to their Swedish names.
var basClassNames = map[string]string{
	"10": "Immateriella anläggningstillgångar",
	"11": "Byggnader och mark",
	"12": "Maskiner och inventarier",
	"13": "Finansiella anläggningstillgångar",
	"14": "Lager och pågående arbeten",
	"15": "Kundfordringar",
	"16": "Övriga kortfristiga fordringar",
	"17": "Förutbetalda kostnader och upplupna intäkter",
	"18": "Kortfristiga placeringar",
	"19": "Kassa och bank",
	"20": "Eget kapital",
	"21": "Obeskattade reserver",
	"22": "Avsättningar",
	"23": "Långfristiga skulder",
	"24": "Kortfristiga skulder",
	"25": "Skatteskulder",
	"26": "Momsskulder",
	"27": "Personalskatter",
	"28": "Övriga kortfristiga skulder",
	"29": "Upplupna kostnader och förutbetalda intäkter",
	"30": "Försäljning",
	"31": "Försäljning",
	"32": "Försäljning",
	"33": "Försäljning",
	"34": "Försäljning",
	"35": "Fakturerade kostnader",
	"36": "Övriga rörelseintäkter",
	"37": "Intäktskorrigeringar",
	"38": "Aktiverat arbete",
	"39": "Övriga rörelseintäkter",
	"40": "Material och varor",
	"41": "Material och varor",
	"42": "Material och varor",
	"43": "Material och varor",
	"44": "Material och varor",
	"45": "Underleverantörer",
	"46": "Legoarbeten, underentreprenad",
	"47": "Reduktion av inköpspriser",
	"49": "Förändring av lager",
	"50": "Lokalkostnader",
	"51": "Fastighetskostnader",
	"52": "Hyra anläggningstillgångar",
	"53": "Energikostnader",
	"54": "Förbrukningsinventarier",
	"55": "Reparation och underhåll",
	"56": "Kostnader transportmedel",
	"57": "Frakter och transporter",
	"58": "Resekostnader",
	"59": "Reklam och PR",
	"60": "Övriga försäljningskostnader",
	"61": "Kontorsmaterial och trycksaker",
	"62": "Tele och post",
	"63": "Försäkringar",
	"64": "Förvaltningskostnader",
	"65": "Övriga externa tjänster",
	"68": "Inhyrd personal",
	"69": "Övriga externa kostnader",
	"70": "Löner kollektivanställda",
	"71": "Löner tjänstemän",
	"72": "Löner företagsledare",
	"73": "Kostnadsersättningar och förmåner",
	"74": "Pensionskostnader",
	"75": "Sociala och andra avgifter",
	"76": "Övriga personalkostnader",
	"77": "Nedskrivningar och avskrivningar",
	"78": "Avskrivningar",
	"79": "Övriga rörelsekostnader",
	"80": "Resultat från andelar i koncernföretag",
	"81": "Resultat från andelar i intresseföretag",
	"82": "Resultat från övriga finansiella anläggningstillgångar",
	"83": "Ränteintäkter och liknande resultatposter",
	"84": "Räntekostnader och liknande resultatposter",
	"88": "Bokslutsdispositioner",
	"89": "Skatter och årets resultat",
}

// ClassName returns the BAS name of a two-digit class, or "Kontogrupp NNxx".
func ClassName(class string) string {
	if name, ok := basClassNames[class]; ok {
		return name
	}
	return "Kontogrupp " + class + "xx"
}
