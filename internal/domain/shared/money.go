package shared

// MoneyScale is the number of decimal places prices and totals are stored with
const MoneyScale = 2
