package catalog

import (
	"time"

	"github.com/jredh-dev/velox/internal/money"
)

const imageBase = "https://images.unsplash.com/"

// Seed returns the demo lots with closing times and bid histories relative
// to now.
func Seed(now time.Time) []Item {
	return []Item{
		{
			ID:          "1",
			LotNumber:   101,
			Title:       "Apartamento Alto Padrão - Jardins/SP",
			Description: "Apartamento residencial com 240m², 4 dormitórios sendo 2 suítes, 3 vagas de garagem. Localização privilegiada na Alameda Lorena. Imóvel desocupado.",
			ImageURL:    imageBase + "photo-1512918760513-0f96bc652d56?auto=format&fit=crop&q=80&w=1000",
			StartingBid: money.Reais(2000000),
			Increment:   money.Reais(20000),
			EndsAt:      now.Add(48 * time.Hour),
			Bids: []Bid{
				{ID: "b1", Amount: money.Reais(2100000), BidderName: "Roberto Almeida", Timestamp: now.Add(-2 * time.Hour)},
				{ID: "b2", Amount: money.Reais(2500000), BidderName: "Investimentos Ltda", Timestamp: now.Add(-15 * time.Minute)},
			},
			Category: CategoryRealEstate,
			Location: "São Paulo, SP",
			Status:   StatusOpen,
		},
		{
			ID:          "2",
			LotNumber:   45,
			Title:       "Toyota Hilux SRX 4x4 Diesel 2023",
			Description: "Veículo recuperado de financiamento. Baixa quilometragem (15.000km). Estado de conservação excelente. Documentação em dia.",
			ImageURL:    imageBase + "photo-1533473359331-0135ef1b58bf?auto=format&fit=crop&q=80&w=1000",
			StartingBid: money.Reais(150000),
			Increment:   money.Reais(2000),
			EndsAt:      now.Add(5 * time.Hour),
			Bids: []Bid{
				{ID: "b3", Amount: money.Reais(165000), BidderName: "Carlos Silva", Timestamp: now.Add(-30 * time.Minute)},
				{ID: "b4", Amount: money.Reais(180000), BidderName: "AutoRepasses", Timestamp: now.Add(-5 * time.Minute)},
			},
			Category: CategoryVehicles,
			Location: "Curitiba, PR",
			Status:   StatusOpen,
		},
		{
			ID:          "3",
			LotNumber:   12,
			Title:       "Relógio Rolex Submariner Date",
			Description: "Relógio original, aço Oystersteel, mostrador preto. Acompanha caixa original e certificado de garantia. Apreensão judicial.",
			ImageURL:    imageBase + "photo-1523170335258-f5ed11844a49?auto=format&fit=crop&q=80&w=1000",
			StartingBid: money.Reais(30000),
			Increment:   money.Reais(1000),
			EndsAt:      now.Add(45 * time.Minute),
			Bids: []Bid{
				{ID: "b5", Amount: money.Reais(45000), BidderName: "João P.", Timestamp: now.Add(-5 * time.Minute)},
			},
			Category: CategoryJudicial,
			Location: "Rio de Janeiro, RJ",
			Status:   StatusOpen,
		},
		{
			ID:          "4",
			LotNumber:   205,
			Title:       "Cobertura Duplex - Vila Velha/ES",
			Description: "Imóvel de frente para o mar, 300m², 5 quartos. Necessita de pequenas reformas. Oportunidade para investimento.",
			ImageURL:    imageBase + "photo-1515263487990-61b07816b324?auto=format&fit=crop&q=80&w=1000",
			StartingBid: money.Reais(900000),
			Increment:   money.Reais(10000),
			EndsAt:      now.Add(72 * time.Hour),
			Category:    CategoryRealEstate,
			Location:    "Vila Velha, ES",
			Status:      StatusOpen,
		},
		{
			ID:          "5",
			LotNumber:   88,
			Title:       "Lote de Informática (MacBooks e Ipads)",
			Description: "Lote contendo 10 MacBooks Pro M1 e 5 iPads Air. Equipamentos de escritório desativado. Venda no estado.",
			ImageURL:    imageBase + "photo-1517336714731-489689fd1ca4?auto=format&fit=crop&q=80&w=1000",
			StartingBid: money.Reais(15000),
			Increment:   money.Reais(500),
			EndsAt:      now.Add(3 * time.Hour),
			Category:    CategoryJudicial,
			Location:    "Belo Horizonte, MG",
			Status:      StatusOpen,
		},
		{
			ID:          "6",
			LotNumber:   33,
			Title:       "Porsche 911 Carrera S 2021",
			Description: "Veículo de luxo, cor cinza, interior vermelho. Apenas 5.000km rodados. Blindado Nível III-A.",
			ImageURL:    imageBase + "photo-1503376763036-066120622c74?auto=format&fit=crop&q=80&w=1000",
			StartingBid: money.Reais(700000),
			Increment:   money.Reais(5000),
			EndsAt:      now.Add(24 * time.Hour),
			Category:    CategoryVehicles,
			Location:    "São Paulo, SP",
			Status:      StatusOpen,
		},
	}
}

// NewSeededStore builds a store from Seed(now).
func NewSeededStore(now time.Time) (*Store, error) {
	return NewStore(Seed(now))
}
