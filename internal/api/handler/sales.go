package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/selling"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sales-manager-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CreateSale registra uma nova venda no ledger
func CreateSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input selling.CreateSaleInput

		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.Create(input)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logrus.Error("Erro ao enviar resposta da venda criada:", err)
		}
	}
}

// ImportSales registra um lote de vendas de uma só vez, de forma
// atômica: qualquer venda inválida rejeita o lote inteiro.
func ImportSales(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inputs []selling.CreateSaleInput

		if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sales, err := service.CreateBatch(r.Context(), inputs)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sales); err != nil {
			logrus.Error("Erro ao enviar resposta do lote de vendas:", err)
		}
	}
}

// ListSales lista todas as vendas (mais recentes primeiro); com ?name=
// filtra por substring do nome do produto, na mesma ordenação. Aceita
// também ?from= e ?to= ("2006-01-02" ou RFC3339) para recortar o período.
func ListSales(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := utils.ParseDate(r.URL.Query().Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Data inicial inválida", nil)
			return
		}

		to, err := utils.ParseDate(r.URL.Query().Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Data final inválida", nil)
			return
		}

		var sales []*domain.Sale
		if name := r.URL.Query().Get("name"); name != "" {
			sales, err = service.SearchByName(name)
		} else {
			sales, err = service.ListAll()
		}

		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, filterByPeriod(sales, from, to))
	}
}

func filterByPeriod(sales []*domain.Sale, from, to *time.Time) []*domain.Sale {
	if from == nil && to == nil {
		return sales
	}

	filtered := make([]*domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if from != nil && sale.SoldAt.Before(*from) {
			continue
		}
		if to != nil && sale.SoldAt.After(*to) {
			continue
		}
		filtered = append(filtered, sale)
	}

	return filtered
}

func GetSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := saleIDFromRequest(w, r)
		if !ok {
			return
		}

		sale, err := service.Get(id)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, sale)
	}
}

func UpdateSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := saleIDFromRequest(w, r)
		if !ok {
			return
		}

		var input selling.UpdateSaleInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.Update(id, input)
		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, sale)
	}
}

func DeleteSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := saleIDFromRequest(w, r)
		if !ok {
			return
		}

		if err := service.Delete(id); err != nil {
			handleSaleError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetStatistics retorna as estatísticas básicas do ledger inteiro
func GetStatistics(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Statistics()
		if err != nil {
			handleSaleError(w, err)
			return
		}

		writeJSON(w, stats)
	}
}

func saleIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	params := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "ID de venda inválido", nil)
		return 0, false
	}

	return id, true
}

// handleSaleError traduz os erros do serviço de vendas para a resposta da API
func handleSaleError(w http.ResponseWriter, err error) {
	var validationErr *selling.ValidationError
	if errors.As(err, &validationErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidSaleData, validationErr.Message, map[string]any{
			"field": validationErr.Field,
		})
		return
	}

	if errors.Is(err, selling.ErrSaleNotFound) {
		apiErrors.WriteError(w, apiErrors.ErrSaleNotFound, "Venda não encontrada", nil)
		return
	}

	var saleErr *selling.SaleError
	if errors.As(err, &saleErr) {
		logrus.WithError(saleErr).Error("Erro de operação de venda")
		apiErrors.WriteError(w, saleErr.Code, "Erro ao acessar o banco de dados", nil)
		return
	}

	logrus.WithError(err).Error("Erro inesperado na operação de venda")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Error("Erro ao enviar resposta:", err)
	}
}
