// Package lexicon holds the fixed Spanish (es-AR) term tables used by the
// insight engine. The tables are package-private; every accessor hands out a
// copy, so nothing at runtime can change what the analyzers match against.
package lexicon

import "slices"

// Group is a named word list.
type Group struct {
	Name  string
	Words []string
}

// Emotion is a word list whose hits add Intensity (which may be negative) to
// the emotion's score.
type Emotion struct {
	Name      string
	Words     []string
	Intensity float64
}

// Context is a topic of a review; its polarity is scaled by Weight.
type Context struct {
	Name     string
	Keywords []string
	Weight   float64
}

// Satisfaction level names, most to least satisfied.
const (
	VerySatisfied    = "very_satisfied"
	Satisfied        = "satisfied"
	NeutralLevel     = "neutral"
	Dissatisfied     = "dissatisfied"
	VeryDissatisfied = "very_dissatisfied"
)

var positiveWords = []string{
	"excelente", "bueno", "genial", "perfecto", "recomiendo", "recomendado",
	"satisfecho", "contento", "feliz", "increíble", "maravilloso", "fantástico",
	"óptimo", "ideal", "super", "muy bueno", "muy bien", "cumple", "cumplió",
	"funciona", "funcionó", "rápido", "rápida", "eficiente", "calidad",
}

var negativeWords = []string{
	"malo", "mal", "pésimo", "terrible", "horrible", "decepcionado", "decepción",
	"problema", "problemas", "falla", "fallas", "defecto", "defectos", "lento",
	"lenta", "caro", "costoso", "no funciona", "no recomendado", "no recomiendo",
	"insatisfecho", "insatisfecha",
}

var emotions = []Emotion{
	{"joy", []string{"feliz", "contento", "alegre", "satisfecho", "encantado", "genial", "excelente"}, 1.0},
	{"trust", []string{"confiable", "seguro", "recomendado", "garantizado", "original", "auténtico"}, 0.9},
	{"fear", []string{"preocupado", "inseguro", "dudoso", "temeroso", "problema", "falla"}, -0.8},
	{"surprise", []string{"sorpresa", "increíble", "asombroso", "impresionante", "maravilloso"}, 0.7},
	{"sadness", []string{"decepcionado", "triste", "insatisfecho", "molesto", "terrible"}, -0.6},
	{"disgust", []string{"terrible", "horrible", "pésimo", "deplorable", "no funciona"}, -0.9},
	{"anger", []string{"enojado", "frustrado", "irritado", "molesto", "defectuoso"}, -0.7},
	{"anticipation", []string{"esperanzado", "optimista", "confiado", "positivo", "recomiendo"}, 0.8},
}

var contexts = []Context{
	{"product_quality", []string{"calidad", "durabilidad", "material", "resistente"}, 1.2},
	{"price_value", []string{"precio", "valor", "económico", "caro", "barato"}, 1.0},
	{"usability", []string{"fácil", "sencillo", "intuitivo", "complicado"}, 1.1},
	{"customer_service", []string{"atención", "soporte", "ayuda", "servicio"}, 0.9},
}

var trendIndicators = []Group{
	{"improving", []string{"mejoró", "superó", "avanzó", "evolucionó", "progresó"}},
	{"declining", []string{"empeoró", "degradó", "retrocedió", "falló", "decepcionó"}},
	{"stable", []string{"mantiene", "consistente", "estable", "igual", "similar"}},
}

var satisfactionLevels = []Group{
	{VerySatisfied, []string{"excelente", "perfecto", "increíble", "maravilloso", "fantástico"}},
	{Satisfied, []string{"bueno", "bien", "recomiendo", "cumple", "funciona"}},
	{NeutralLevel, []string{"normal", "regular", "aceptable", "básico"}},
	{Dissatisfied, []string{"malo", "problema", "falla", "lento", "caro"}},
	{VeryDissatisfied, []string{"pésimo", "terrible", "horrible", "decepción", "no funciona"}},
}

var themes = []Group{
	{"price", []string{"precio", "costo", "caro", "barato", "económico"}},
	{"quality", []string{"calidad", "durabilidad", "resistente", "premium"}},
	{"performance", []string{"rápido", "velocidad", "rendimiento", "eficiente"}},
	{"usability", []string{"fácil", "sencillo", "intuitivo", "complicado"}},
	{"support", []string{"atención", "soporte", "ayuda", "servicio"}},
	{"delivery", []string{"envío", "entrega", "llegada", "shipping"}},
}

var (
	issueIndicators      = []string{"problema", "falla", "error", "defecto", "no funciona"}
	praiseIndicators     = []string{"excelente", "bueno", "genial", "perfecto", "recomiendo"}
	suggestionIndicators = []string{"mejorar", "sugerencia", "recomendación", "debería", "podría"}
)

var reviewCategories = []Group{
	{"quality", []string{"calidad", "durabilidad", "resistente", "premium"}},
	{"performance", []string{"rápido", "velocidad", "rendimiento", "eficiente"}},
	{"value", []string{"precio", "valor", "económico", "caro", "barato"}},
	{"usability", []string{"fácil", "sencillo", "intuitivo", "complicado", "difícil"}},
}

var featureCategories = []Group{
	{"material", []string{"material", "tela", "algodón", "poliéster", "cuero", "plástico", "metal", "madera", "acero", "aluminio", "fibra", "sintético", "natural"}},
	{"size", []string{"talle", "tamaño", "medida", "dimensiones", "largo", "ancho", "alto", "profundidad", "peso", "capacidad", "volumen"}},
	{"color", []string{"color", "colores", "tono", "multicolor", "estampado", "diseño", "patrón", "motivo"}},
	{"brand", []string{"marca", "original", "genuino", "auténtico", "oficial", "certificado"}},
	{"condition", []string{"nuevo", "usado", "reacondicionado", "restaurado", "seminuevo", "como nuevo"}},
	{"warranty", []string{"garantía", "garantizado", "devolución", "cambio", "servicio técnico", "soporte"}},
	{"shipping", []string{"envío", "entrega", "gratis", "gratuito", "sin cargo", "retiro", "pickup", "sucursal"}},
	{"package", []string{"incluye", "contenido", "accesorios", "manual", "instrucciones", "caja", "embalaje"}},
	{"quality", []string{"calidad", "premium", "resistente", "durable", "robusto", "fuerte", "resistencia"}},
	{"design", []string{"diseño", "estilo", "moderno", "clásico", "elegante", "exclusivo", "único"}},
	{"comfort", []string{"cómodo", "ergonómico", "suave", "flexible", "adaptable", "ajustable"}},
	{"safety", []string{"seguro", "certificado", "normas", "estándar", "aprobado", "testeado"}},
	{"maintenance", []string{"mantenimiento", "limpieza", "cuidado", "lavado", "conservación"}},
	{"compatibility", []string{"compatible", "universal", "adaptador", "conexión", "acoplamiento"}},
	{"sustainability", []string{"ecológico", "sustentable", "reciclable", "biodegradable", "ambiental"}},
}

var stopWords = toSet([]string{
	"de", "la", "el", "en", "y", "a", "los", "las", "un", "una", "por", "para",
	"con", "no", "es", "se", "del", "al", "que", "más", "mi", "me", "su", "sus",
	"lo", "le", "si", "pero", "o", "sin", "también", "muy", "como", "cuando",
	"donde", "quien", "este", "esta", "estos", "estas", "son", "fue", "unos",
	"unas", "ha", "han", "tener", "estar", "ser", "hacer", "haber",
})

var sentimentSet = toSet(append(slices.Clone(positiveWords), negativeWords...))

// PositiveWords returns the positive sentiment terms in declaration order.
func PositiveWords() []string { return slices.Clone(positiveWords) }

// NegativeWords returns the negative sentiment terms in declaration order.
func NegativeWords() []string { return slices.Clone(negativeWords) }

// SentimentWords returns the positive terms followed by the negative ones.
func SentimentWords() []string {
	return append(slices.Clone(positiveWords), negativeWords...)
}

// IsSentimentWord reports whether w is exactly one of the sentiment terms.
func IsSentimentWord(w string) bool {
	_, ok := sentimentSet[w]
	return ok
}

// IsStopWord reports whether w is in the keyword stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

func Emotions() []Emotion {
	out := make([]Emotion, len(emotions))
	for i, e := range emotions {
		out[i] = Emotion{Name: e.Name, Words: slices.Clone(e.Words), Intensity: e.Intensity}
	}
	return out
}

func Contexts() []Context {
	out := make([]Context, len(contexts))
	for i, c := range contexts {
		out[i] = Context{Name: c.Name, Keywords: slices.Clone(c.Keywords), Weight: c.Weight}
	}
	return out
}

func TrendIndicators() []Group    { return cloneGroups(trendIndicators) }
func SatisfactionLevels() []Group { return cloneGroups(satisfactionLevels) }
func Themes() []Group             { return cloneGroups(themes) }

// ReviewCategories are the topics reviews are grouped by for per-category
// sentiment.
func ReviewCategories() []Group { return cloneGroups(reviewCategories) }

// FeatureCategories are the product attributes counted in descriptions.
func FeatureCategories() []Group { return cloneGroups(featureCategories) }

func IssueIndicators() []string      { return slices.Clone(issueIndicators) }
func PraiseIndicators() []string     { return slices.Clone(praiseIndicators) }
func SuggestionIndicators() []string { return slices.Clone(suggestionIndicators) }

func cloneGroups(gs []Group) []Group {
	out := make([]Group, len(gs))
	for i, g := range gs {
		out[i] = Group{Name: g.Name, Words: slices.Clone(g.Words)}
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
