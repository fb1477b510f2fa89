package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopbalance-backend/internal/balances"
	"github.com/angelmondragon/shopbalance-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopbalance-backend/pkg/errors"
)

// FindReportsByDate returns one summary per shop with a balance on date,
// ordered by shop name. A date without data yields an empty slice.
func (s *service) FindReportsByDate(ctx context.Context, date time.Time) ([]ShopReport, error) {
	window := s.window(date)
	rows, err := s.balances.ListWithShopByDate(ctx, window.Date)
	if err != nil {
		return nil, classify(err, "list daily reports")
	}
	reports := make([]ShopReport, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, toShopReport(row))
	}
	return reports, nil
}

// FindDetailedReport returns the shop's summary with its delivered and failed
// orders for date.
func (s *service) FindDetailedReport(ctx context.Context, date time.Time, shopID uuid.UUID) (*DetailedReport, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	window := s.window(date)

	row, err := s.balances.FindWithShop(ctx, shopID, window.Date)
	if err != nil {
		return nil, classify(err, "load daily report")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no report for shop on date").
			WithDetails(map[string]any{"shop_id": shopID.String(), "date": window.String()})
	}

	settled, err := s.orders.ListSettledForShop(ctx, shopID, window)
	if err != nil {
		return nil, classify(err, "load report orders")
	}
	ids := make([]uuid.UUID, 0, len(settled))
	for _, order := range settled {
		ids = append(ids, order.ID)
	}
	items, err := s.orders.ListItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, classify(err, "load report items")
	}
	byOrder := make(map[uuid.UUID][]models.OrderItem, len(settled))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	report := &DetailedReport{
		ShopReport: toShopReport(*row),
		Orders:     make([]ReportOrder, 0, len(settled)),
	}
	for _, order := range settled {
		report.Orders = append(report.Orders, ReportOrder{
			ID:               order.ID,
			DeliveryLocation: order.DeliveryLocation,
			CustomerPhone:    order.CustomerPhone,
			ArticleAmount:    order.ArticleAmount,
			DeliveryFee:      order.DeliveryFee,
			Status:           order.Status,
			AmountReceived:   order.AmountReceived,
			ProductsList:     productsList(byOrder[order.ID]),
		})
	}
	return report, nil
}

func toShopReport(row balances.ShopBalanceRow) ShopReport {
	return ShopReport{
		ShopID:               row.ShopID,
		ShopName:             row.ShopName,
		ReportDate:           row.ReportDate.Format(time.DateOnly),
		TotalOrdersSent:      row.TotalOrdersSent,
		TotalOrdersDelivered: row.TotalOrdersDelivered,
		TotalRevenueArticles: row.TotalRevenueArticles,
		TotalDeliveryFees:    row.TotalDeliveryFees,
		TotalExpeditionFees:  row.TotalExpeditionFees,
		TotalPackagingFees:   row.TotalPackagingFees,
		TotalStorageFees:     row.TotalStorageFees,
		AmountToRemit:        row.RemittanceAmount,
		ExpeditionFee:        row.ShopExpeditionFee,
	}
}

// productsList renders items as "Soap x2, Candle x1".
func productsList(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.ItemName, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
