package factory

import "listing-service/internal/core/domain"

func monthsNote(months float64) string {
	if months == 0 {
		return "なし"
	}
	return formatNumber(months) + "ヶ月"
}

// BuildInitialCosts считает начальные расходы по аренде (price в 万円, mgmt в 円).
func BuildInitialCosts(price float64, mgmt int, depositMonths, keyMoneyMonths float64) domain.InitialCosts {
	yen := roundHalfUp(price * 10000)

	costs := domain.InitialCosts{
		Deposit:      domain.CostItem{Label: "敷金", Amount: int64(roundHalfUp(yen * depositMonths)), Note: monthsNote(depositMonths)},
		KeyMoney:     domain.CostItem{Label: "礼金", Amount: int64(roundHalfUp(yen * keyMoneyMonths)), Note: monthsNote(keyMoneyMonths)},
		Rent:         domain.CostItem{Label: "前家賃", Amount: int64(yen), Note: "1ヶ月"},
		Management:   domain.CostItem{Label: "管理費・共益費", Amount: int64(mgmt)},
		Brokerage:    domain.CostItem{Label: "仲介手数料", Amount: int64(roundHalfUp(yen * costConfig.brokerageRate)), Note: "税込"},
		Insurance:    domain.CostItem{Label: "火災保険料", Amount: costConfig.insurance.pick(price), Note: "2年間"},
		GuarantorFee: domain.CostItem{Label: "保証会社利用料", Amount: int64(roundHalfUp(yen * costConfig.guarantorRate)), Note: "賃料50%"},
		KeyExchange:  domain.CostItem{Label: "鍵交換費用", Amount: costConfig.keyExchange.pick(price), Note: "税込"},
	}
	costs.Sum()
	return costs
}
