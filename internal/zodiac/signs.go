package zodiac

import "github.com/set-night/astrocalc/internal/domain"

// signs is ordered Aries..Pisces and never mutated after init.
var signs = []domain.ZodiacSign{
	{
		ID: "aries", Name: "Koç", Symbol: "♈", Element: domain.ElementFire, DateRange: "21 Mart - 19 Nisan",
		Traits: domain.Traits{
			Positive: []string{"Cesur", "Enerjik", "Girişimci", "Dürüst"},
			Negative: []string{"Sabırsız", "Aceleci", "İnatçı"},
		},
		Compatibility: []string{"Aslan", "Yay", "İkizler", "Kova"},
		LuckyNumbers:  []int{1, 8, 17},
		LuckyColors:   []string{"Kırmızı", "Turuncu"},
		Planet:        "Mars", Gemstone: "Elmas", BodyPart: "Baş",
	},
	{
		ID: "taurus", Name: "Boğa", Symbol: "♉", Element: domain.ElementEarth, DateRange: "20 Nisan - 20 Mayıs",
		Traits: domain.Traits{
			Positive: []string{"Güvenilir", "Sabırlı", "Pratik", "Sadık"},
			Negative: []string{"İnatçı", "Sahiplenici", "Değişime kapalı"},
		},
		Compatibility: []string{"Başak", "Oğlak", "Yengeç", "Balık"},
		LuckyNumbers:  []int{2, 6, 9, 12},
		LuckyColors:   []string{"Yeşil", "Pembe"},
		Planet:        "Venüs", Gemstone: "Zümrüt", BodyPart: "Boyun",
	},
	{
		ID: "gemini", Name: "İkizler", Symbol: "♊", Element: domain.ElementAir, DateRange: "21 Mayıs - 20 Haziran",
		Traits: domain.Traits{
			Positive: []string{"Meraklı", "Uyumlu", "İletişimci", "Zeki"},
			Negative: []string{"Kararsız", "Huzursuz", "Yüzeysel"},
		},
		Compatibility: []string{"Terazi", "Kova", "Koç", "Aslan"},
		LuckyNumbers:  []int{5, 7, 14, 23},
		LuckyColors:   []string{"Sarı", "Açık yeşil"},
		Planet:        "Merkür", Gemstone: "Akik", BodyPart: "Kollar ve akciğerler",
	},
	{
		ID: "cancer", Name: "Yengeç", Symbol: "♋", Element: domain.ElementWater, DateRange: "21 Haziran - 22 Temmuz",
		Traits: domain.Traits{
			Positive: []string{"Şefkatli", "Koruyucu", "Sezgisel", "Sadık"},
			Negative: []string{"Alıngan", "Karamsar", "Kuşkucu"},
		},
		Compatibility: []string{"Akrep", "Balık", "Boğa", "Başak"},
		LuckyNumbers:  []int{2, 3, 15, 20},
		LuckyColors:   []string{"Beyaz", "Gümüş"},
		Planet:        "Ay", Gemstone: "İnci", BodyPart: "Göğüs ve mide",
	},
	{
		ID: "leo", Name: "Aslan", Symbol: "♌", Element: domain.ElementFire, DateRange: "23 Temmuz - 22 Ağustos",
		Traits: domain.Traits{
			Positive: []string{"Cömert", "Yaratıcı", "Tutkulu", "Neşeli"},
			Negative: []string{"Kibirli", "İnatçı", "Bencil"},
		},
		Compatibility: []string{"Koç", "Yay", "İkizler", "Terazi"},
		LuckyNumbers:  []int{1, 3, 10, 19},
		LuckyColors:   []string{"Altın", "Turuncu"},
		Planet:        "Güneş", Gemstone: "Yakut", BodyPart: "Kalp ve sırt",
	},
	{
		ID: "virgo", Name: "Başak", Symbol: "♍", Element: domain.ElementEarth, DateRange: "23 Ağustos - 22 Eylül",
		Traits: domain.Traits{
			Positive: []string{"Analitik", "Çalışkan", "Titiz", "Yardımsever"},
			Negative: []string{"Eleştirel", "Endişeli", "Mükemmeliyetçi"},
		},
		Compatibility: []string{"Boğa", "Oğlak", "Yengeç", "Akrep"},
		LuckyNumbers:  []int{5, 14, 15, 23},
		LuckyColors:   []string{"Gri", "Bej"},
		Planet:        "Merkür", Gemstone: "Safir", BodyPart: "Sindirim sistemi",
	},
	{
		ID: "libra", Name: "Terazi", Symbol: "♎", Element: domain.ElementAir, DateRange: "23 Eylül - 22 Ekim",
		Traits: domain.Traits{
			Positive: []string{"Diplomatik", "Adil", "Sosyal", "Zarif"},
			Negative: []string{"Kararsız", "Çatışmadan kaçan", "Bağımlı"},
		},
		Compatibility: []string{"İkizler", "Kova", "Aslan", "Yay"},
		LuckyNumbers:  []int{4, 6, 13, 15},
		LuckyColors:   []string{"Pembe", "Mavi"},
		Planet:        "Venüs", Gemstone: "Opal", BodyPart: "Böbrekler ve bel",
	},
	{
		ID: "scorpio", Name: "Akrep", Symbol: "♏", Element: domain.ElementWater, DateRange: "23 Ekim - 21 Kasım",
		Traits: domain.Traits{
			Positive: []string{"Tutkulu", "Kararlı", "Cesur", "Sadık"},
			Negative: []string{"Kıskanç", "Gizemli", "Kinci"},
		},
		Compatibility: []string{"Yengeç", "Balık", "Başak", "Oğlak"},
		LuckyNumbers:  []int{8, 11, 18, 22},
		LuckyColors:   []string{"Bordo", "Siyah"},
		Planet:        "Plüton", Gemstone: "Topaz", BodyPart: "Üreme organları",
	},
	{
		ID: "sagittarius", Name: "Yay", Symbol: "♐", Element: domain.ElementFire, DateRange: "22 Kasım - 21 Aralık",
		Traits: domain.Traits{
			Positive: []string{"İyimser", "Özgürlüğüne düşkün", "Esprili", "Maceracı"},
			Negative: []string{"Sabırsız", "Düşüncesiz", "Abartıya kaçan"},
		},
		Compatibility: []string{"Koç", "Aslan", "Terazi", "Kova"},
		LuckyNumbers:  []int{3, 7, 9, 12, 21},
		LuckyColors:   []string{"Mor", "Lacivert"},
		Planet:        "Jüpiter", Gemstone: "Firuze", BodyPart: "Kalçalar ve uyluklar",
	},
	{
		ID: "capricorn", Name: "Oğlak", Symbol: "♑", Element: domain.ElementEarth, DateRange: "22 Aralık - 19 Ocak",
		Traits: domain.Traits{
			Positive: []string{"Disiplinli", "Sorumluluk sahibi", "Hırslı", "Sabırlı"},
			Negative: []string{"Katı", "Kötümser", "Mesafeli"},
		},
		Compatibility: []string{"Boğa", "Başak", "Akrep", "Balık"},
		LuckyNumbers:  []int{4, 8, 13, 22},
		LuckyColors:   []string{"Kahverengi", "Siyah"},
		Planet:        "Satürn", Gemstone: "Granat", BodyPart: "Dizler ve kemikler",
	},
	{
		ID: "aquarius", Name: "Kova", Symbol: "♒", Element: domain.ElementAir, DateRange: "20 Ocak - 18 Şubat",
		Traits: domain.Traits{
			Positive: []string{"Yenilikçi", "Bağımsız", "İnsancıl", "Özgün"},
			Negative: []string{"Soğuk", "Asi", "Öngörülemez"},
		},
		Compatibility: []string{"İkizler", "Terazi", "Koç", "Yay"},
		LuckyNumbers:  []int{4, 7, 11, 22, 29},
		LuckyColors:   []string{"Turkuaz", "Gümüş"},
		Planet:        "Uranüs", Gemstone: "Ametist", BodyPart: "Bilekler ve dolaşım",
	},
	{
		ID: "pisces", Name: "Balık", Symbol: "♓", Element: domain.ElementWater, DateRange: "19 Şubat - 20 Mart",
		Traits: domain.Traits{
			Positive: []string{"Sezgisel", "Sanatsal", "Merhametli", "Hayalperest"},
			Negative: []string{"Kaçamak", "Fazla hassas", "Kararsız"},
		},
		Compatibility: []string{"Yengeç", "Akrep", "Boğa", "Oğlak"},
		LuckyNumbers:  []int{3, 9, 12, 15, 18, 24},
		LuckyColors:   []string{"Deniz yeşili", "Lila"},
		Planet:        "Neptün", Gemstone: "Akuamarin", BodyPart: "Ayaklar",
	},
}

var (
	byID   = make(map[string]int, len(signs))
	byName = make(map[string]int, len(signs))
)

func init() {
	for i, s := range signs {
		byID[s.ID] = i
		byName[fold(s.Name)] = i
	}
}
