package conserje

// Sheet describes one sheet of the concierge workbook and the columns the
// template generator lays out for it.
type Sheet struct {
	Name    string
	Columns []string
}

const (
	RecommendationsSheet = "Recomendaciones_Locales"
	RulesSheet           = "Reglas_de_Gobierno"
)

var itemColumns = []string{
	"id",
	"nombre_publico",
	"categoria",
	"desc_factual",
	"desc_experiencial",
	"intenciones",
	"perfil_ideal",
	"restricciones_requisitos",
	"condiciones_servicio",
	"imagenes_url",
	"frases_sugeridas",
	"ctas",
	"horario_apertura",
	"horario_cierre",
	"precio_desde",
	"check_in",
	"check_out",
	"redirigir",
	"link_ubicacion_mapa",
}

var ruleColumns = []string{"regla_id", "regla_clave", "descripcion_practica"}

// Sheets lists the workbook sheets that are converted, in output order.
var Sheets = []Sheet{
	{"Habitaciones", itemColumns},
	{"Servicios", itemColumns},
	{"Instalaciones", itemColumns},
	{RecommendationsSheet, itemColumns},
	{RulesSheet, ruleColumns},
}

// ArrayFields are split on "|" into string lists.
var ArrayFields = []string{
	"intenciones",
	"perfil_ideal",
	"restricciones_requisitos",
	"condiciones_servicio",
	"imagenes_url",
	"frases_sugeridas",
	"ctas",
}

// TimeFields hold a time of day. Blank cells become null.
var TimeFields = []string{"horario_apertura", "horario_cierre"}

// ScalarDefaults are present on every item. A nil default is written as
// null.
var ScalarDefaults = []struct {
	Field   string
	Default any
}{
	{"horario_apertura", nil},
	{"horario_cierre", nil},
	{"precio_desde", ""},
	{"check_in", ""},
	{"check_out", ""},
	{"redirigir", ""},
	{"link_ubicacion_mapa", ""},
}

// HeaderAliases maps normalized headers that lost their separators to the
// canonical field name.
var HeaderAliases = map[string]string{
	"checkin":                 "check_in",
	"checkout":                "check_out",
	"preciodesde":             "precio_desde",
	"horarioapertura":         "horario_apertura",
	"horariocierre":           "horario_cierre",
	"nombrepublico":           "nombre_publico",
	"linkubicacionmapa":       "link_ubicacion_mapa",
	"imagenesurl":             "imagenes_url",
	"frasessugeridas":         "frases_sugeridas",
	"perfilideal":             "perfil_ideal",
	"descfactual":             "desc_factual",
	"descexperiencial":        "desc_experiencial",
	"restriccionesrequisitos": "restricciones_requisitos",
	"condicionesservicio":     "condiciones_servicio",
	"reglaid":                 "regla_id",
	"reglaclave":              "regla_clave",
	"descripcionpractica":     "descripcion_practica",
}

// TokenFixes are known typos corrected inside array values.
var TokenFixes = []struct {
	From, To string
}{
	{"Reomendaciones", "Recomendaciones"},
}

const (
	mapSearchURL  = "https://www.google.com/maps/search/?api=1&query="
	mapLinkSuffix = "Miraflores Lima"
)

var (
	arrayFieldSet = toSet(ArrayFields)
	timeFieldSet  = toSet(TimeFields)
)

func toSet(fields []string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
