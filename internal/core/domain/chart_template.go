package domain

// ChartTemplateEntry is one row of the built-in chart of accounts template.
type ChartTemplateEntry struct {
	Code             string
	Name             string
	Class            AccountClass
	ParentCode       string
	AllowManualEntry bool
}

// Default account codes referenced by the posting and payroll paths.
const (
	CodeCashOnHand                 = "1010"
	CodeBankAccounts               = "1030"
	CodeOtherIncome                = "6280"
	CodeSalaryExpense              = "7210"
	CodeSalaryPayable              = "3350"
	CodeOPVPayable                 = "3220"
	CodeVOSMSPayable               = "3212"
	CodeIPNPayable                 = "3120"
	CodeSocialTaxPayable           = "3150"
	CodeSocialContributionsPayable = "3211"
)

// DefaultChartTemplate returns a condensed Kazakhstan standard chart of accounts.
// Section headers (four digits ending in 00) are not postable.
func DefaultChartTemplate() []ChartTemplateEntry {
	return []ChartTemplateEntry{
		{Code: "1000", Name: "Краткосрочные активы", Class: Asset},
		{Code: "1010", Name: "Денежные средства в кассе", Class: Asset, ParentCode: "1000", AllowManualEntry: true},
		{Code: "1030", Name: "Денежные средства на текущих банковских счетах", Class: Asset, ParentCode: "1000", AllowManualEntry: true},
		{Code: "1210", Name: "Краткосрочная дебиторская задолженность покупателей", Class: Asset, ParentCode: "1000", AllowManualEntry: true},
		{Code: "1310", Name: "Сырье и материалы", Class: Asset, ParentCode: "1000", AllowManualEntry: true},
		{Code: "1330", Name: "Товары", Class: Asset, ParentCode: "1000", AllowManualEntry: true},
		{Code: "2000", Name: "Долгосрочные активы", Class: Asset},
		{Code: "2410", Name: "Основные средства", Class: Asset, ParentCode: "2000", AllowManualEntry: true},
		{Code: "2420", Name: "Амортизация основных средств", Class: Asset, ParentCode: "2000", AllowManualEntry: true},
		{Code: "2730", Name: "Нематериальные активы", Class: Asset, ParentCode: "2000", AllowManualEntry: true},
		{Code: "3000", Name: "Краткосрочные обязательства", Class: Liability},
		{Code: "3110", Name: "Корпоративный подоходный налог к уплате", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3120", Name: "Индивидуальный подоходный налог", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3130", Name: "Налог на добавленную стоимость", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3150", Name: "Социальный налог", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3211", Name: "Обязательства по социальному страхованию", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3212", Name: "Обязательства по отчислениям и взносам на ОСМС", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3220", Name: "Обязательства по пенсионным отчислениям", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3310", Name: "Краткосрочная кредиторская задолженность поставщикам", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "3350", Name: "Краткосрочная задолженность по оплате труда", Class: Liability, ParentCode: "3000", AllowManualEntry: true},
		{Code: "4000", Name: "Долгосрочные обязательства", Class: Liability},
		{Code: "4010", Name: "Долгосрочные банковские займы", Class: Liability, ParentCode: "4000", AllowManualEntry: true},
		{Code: "5000", Name: "Капитал и резервы", Class: Equity},
		{Code: "5010", Name: "Уставный капитал", Class: Equity, ParentCode: "5000", AllowManualEntry: true},
		{Code: "5510", Name: "Нераспределенная прибыль (непокрытый убыток) отчетного года", Class: Equity, ParentCode: "5000", AllowManualEntry: true},
		{Code: "5520", Name: "Нераспределенная прибыль (непокрытый убыток) предыдущих лет", Class: Equity, ParentCode: "5000", AllowManualEntry: true},
		{Code: "6000", Name: "Доходы", Class: Revenue},
		{Code: "6010", Name: "Доход от реализации продукции и оказания услуг", Class: Revenue, ParentCode: "6000", AllowManualEntry: true},
		{Code: "6280", Name: "Прочие доходы", Class: Revenue, ParentCode: "6000", AllowManualEntry: true},
		{Code: "7000", Name: "Расходы", Class: Expense},
		{Code: "7010", Name: "Себестоимость реализованной продукции и оказанных услуг", Class: Expense, ParentCode: "7000", AllowManualEntry: true},
		{Code: "7110", Name: "Расходы по реализации продукции и оказанию услуг", Class: Expense, ParentCode: "7000", AllowManualEntry: true},
		{Code: "7210", Name: "Административные расходы", Class: Expense, ParentCode: "7000", AllowManualEntry: true},
		{Code: "7310", Name: "Расходы на выплату вознаграждения", Class: Expense, ParentCode: "7000", AllowManualEntry: true},
		{Code: "7470", Name: "Прочие расходы", Class: Expense, ParentCode: "7000", AllowManualEntry: true},
		{Code: "7710", Name: "Расходы по корпоративному подоходному налогу", Class: Expense, ParentCode: "7000", AllowManualEntry: true},
	}
}
