package advisor

// Quote is a daily motivational quote shown on the dashboard.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Source string `json:"source"`
}

var dailyQuotes = []Quote{
	{Text: "Os planos bem elaborados levam à fartura; mas o apressado acaba na miséria.", Author: "Provérbios 21:5 (NVT)", Source: "Bíblia Sagrada"},
	{Text: "Quem ama o dinheiro jamais terá o suficiente; quem ama a riqueza jamais ficará satisfeito.", Author: "Eclesiastes 5:10 (NVT)", Source: "Bíblia Sagrada"},
	{Text: "A sabedoria preserva a vida de quem a possui.", Author: "Eclesiastes 7:12 (NVT)", Source: "Bíblia Sagrada"},
	{Text: "O rico domina sobre o pobre; quem toma emprestado é escravo de quem empresta.", Author: "Provérbios 22:7 (NVT)", Source: "Bíblia Sagrada"},
	{Text: "A riqueza obtida com desonestidade diminuirá, mas quem a ajunta aos poucos a fará aumentar.", Author: "Provérbios 13:11 (NVT)", Source: "Bíblia Sagrada"},
	{Text: "Não trabalhe pelo dinheiro. Faça o dinheiro trabalhar para você.", Author: "Robert Kiyosaki", Source: "Pai Rico, Pai Pobre"},
	{Text: "Ativos põem dinheiro no seu bolso. Passivos tiram dinheiro do seu bolso.", Author: "Robert Kiyosaki", Source: "Pai Rico, Pai Pobre"},
	{Text: "Ou você controla o seu dinheiro ou ele controlará você.", Author: "T. Harv Eker", Source: "Segredos da Mente Milionária"},
	{Text: "Uma parte de tudo que você ganha pertence a você.", Author: "George S. Clason", Source: "O Homem Mais Rico da Babilônia"},
	{Text: "Riqueza é o que você não vê.", Author: "Morgan Housel", Source: "A Psicologia Financeira"},
	{Text: "Enriquecer é uma questão de escolha, não de sorte.", Author: "Gustavo Cerbasi", Source: "Casais Inteligentes Enriquecem Juntos"},
	{Text: "Pobreza não é falta de dinheiro, é falta de sabedoria.", Author: "Tiago Brunet", Source: "Dinheiro é Emocional"},
}

var dailyTips = []string{
	"Pague a si mesmo primeiro: Separe seu investimento assim que receber.",
	"Evite compras por impulso: Espere 24h antes de comprar algo não essencial.",
	"Revise suas assinaturas mensais. Você usa tudo o que paga?",
	"Acompanhe suas metas semanalmente para não perder o foco.",
	"Crie um fundo de reserva para imprevistos e durma tranquilo.",
}

var scorePhrases = struct {
	high []string
	mid  []string
	low  []string
}{
	high: []string{
		"Extraordinário! Você está no comando total.",
		"Uma fortaleza financeira inabalável.",
		"Modo Mente Milionária: ATIVADO. 🚀",
	},
	mid: []string{
		"Você está no caminho certo, continue firme.",
		"Bom trabalho, mas ainda há margem para otimizar.",
		"Constância é a chave.",
	},
	low: []string{
		"Alerta: Precisamos estancar esse sangramento agora.",
		"Atenção total: Sua saúde financeira pede socorro.",
		"O primeiro passo para sair do buraco é parar de cavar.",
	},
}
