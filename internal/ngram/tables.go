package ngram

// bigram/trigram weights are small hand-curated frequency classes (1-9,
// higher = more common), not exact corpus counts: good enough to rank a
// word as "looks like English" vs "looks like Russian typed on the
// wrong layout" without shipping a multi-megabyte frequency table.
// Russian entries are keyed by the QWERTY scancode sequence the
// Cyrillic word would produce, matching how dictionary.Lookup stores
// its Russian word set.

var enBigrams = map[string]uint8{
	"th": 9, "he": 9, "in": 8, "er": 8, "an": 8, "re": 7, "on": 7,
	"at": 7, "en": 7, "nd": 7, "ti": 6, "es": 6, "or": 6, "te": 6,
	"of": 6, "ed": 6, "is": 6, "it": 6, "al": 6, "ar": 6, "st": 6,
	"to": 6, "nt": 5, "ng": 5, "se": 5, "ha": 5, "as": 5, "ou": 5,
	"io": 5, "le": 5, "ve": 5, "co": 5, "me": 5, "de": 5, "hi": 5,
	"ri": 4, "ro": 4, "ic": 4, "ne": 4, "ea": 4, "ra": 4, "ce": 4,
	"li": 4, "ch": 4, "ll": 4, "be": 4, "ma": 4, "si": 4, "om": 4,
	"ur": 4, "ca": 4, "el": 4, "ta": 4, "la": 4, "ns": 3, "di": 3,
	"fo": 3, "ho": 3, "pe": 3, "ec": 3, "pr": 3, "no": 3, "ct": 3,
	"us": 3, "ac": 3, "ot": 3, "il": 3, "tr": 3, "ly": 3, "nc": 3,
	"et": 3, "id": 3, "ge": 3, "gh": 3, "wh": 3, "wi": 3, "wa": 3,
}

var enTrigrams = map[string]uint8{
	"the": 9, "and": 8, "ing": 8, "ion": 7, "tio": 7, "ent": 6,
	"for": 6, "ati": 6, "his": 5, "ter": 5, "all": 5, "ers": 5,
	"hat": 5, "tha": 5, "ere": 5, "ate": 5, "her": 5, "con": 4,
	"res": 4, "ver": 4, "oul": 4, "nce": 4, "int": 4, "ith": 4,
	"ost": 4, "men": 4, "com": 4, "pro": 3, "und": 3, "est": 3,
}

// ruBigrams/ruTrigrams key on the QWERTY scancode sequence produced by
// a Cyrillic word, e.g. "привет" -> "ghbdtn".
var ruBigrams = map[string]uint8{
	"cn": 9, "nj": 8, "gj": 8, "jd": 7, "dj": 7, "rj": 7, "tj": 7,
	"yt": 7, "yf": 7, "jr": 6, "rt": 6, "tc": 6, "lk": 6, "pf": 6,
	"fy": 6, "jv": 5, "vt": 5, "jy": 5, "sy": 5, "nt": 5,
	"hf": 5, "fk": 5, "jc": 4, "yj": 4,
	"uj": 4, "jg": 4, "gh": 4, "dc": 4, "vj": 4, "kz": 4,
	"bq": 3, "jq": 3, "fq": 3, "tq": 3, "ay": 3, "en": 3,
}

var ruTrigrams = map[string]uint8{
	"cnj": 9, "jdf": 7, "rjq": 6, "jdj": 6, "ghb": 6,
	"ybt": 5, "ctn": 4, "hfp": 4, "gjl": 4,
}

// invalidEnBigrams are letter pairs that essentially never occur in
// English, used to penalize words that look like mistyped Russian.
var invalidEnBigrams = map[string]bool{
	"bq": true, "jq": true, "qw": true, "qx": true, "qz": true,
	"xj": true, "jx": true, "vq": true, "qv": true, "kq": true,
	"zx": true, "xz": true, "jb": true, "bj": true,
}

// invalidRuBigrams are QWERTY key pairs that essentially never occur
// when typing Russian, used symmetrically to penalize English words
// scored against the Russian table.
var invalidRuBigrams = map[string]bool{
	"th": true, "wh": true, "ck": true, "qu": true, "ph": true,
	"gh": true, "sh": true, "oo": true, "ee": true, "ii": true,
}

func lookup(table map[string]uint8, key string) uint8 {
	return table[key]
}
