package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
	"time"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="id">
<head>
  <meta charset="utf-8" />
  <title>{{.Invoice.Header.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice {
      max-width: 820px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #111827;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta {
      text-align: right;
      font-size: 14px;
    }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section {
      margin-bottom: 24px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    td.amount, th.amount { text-align: right; }
    .totals {
      margin-top: 12px;
      margin-left: auto;
      width: 320px;
      font-size: 14px;
    }
    .totals td { border-bottom: none; padding: 4px 10px; }
    .totals .grand td {
      border-top: 2px solid #111827;
      font-size: 16px;
      font-weight: bold;
    }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
      white-space: pre-line;
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <div><strong>{{.Business.Name}}</strong></div>
        {{if .Business.Address}}<div>{{.Business.Address}}</div>{{end}}
        {{if .Business.Phone}}<div>{{.Business.Phone}}</div>{{end}}
        {{if .Business.Email}}<div>{{.Business.Email}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Invoice</div>
        <div><strong>{{.Invoice.Header.InvoiceNumber}}</strong></div>
        <div>Tanggal: {{formatDate .Invoice.Header.Date}}</div>
      </div>
    </div>

    {{if .Invoice.Customer.Name}}
    <div class="section">
      <div class="label">Kepada</div>
      <div>{{.Invoice.Customer.Name}}</div>
      {{if .Invoice.Customer.Phone}}<div>{{.Invoice.Customer.Phone}}</div>{{end}}
      {{if .Invoice.Customer.Address}}<div>{{.Invoice.Customer.Address}}</div>{{end}}
    </div>
    {{end}}

    <div class="section">
      <table>
        <thead>
          <tr>
            <th>Produk</th>
            <th class="amount">Qty</th>
            <th class="amount">Harga Satuan</th>
            <th class="amount">Jumlah</th>
          </tr>
        </thead>
        <tbody>
          {{range .Invoice.Items}}
          <tr>
            <td>{{.ProductName}}</td>
            <td class="amount">{{.Quantity}}</td>
            <td class="amount">{{formatMoney .UnitPrice}}</td>
            <td class="amount">{{formatMoney .LineTotal}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      <table class="totals">
        <tr><td>Subtotal</td><td class="amount">{{formatMoney .Invoice.Calculations.Subtotal}}</td></tr>
        {{if .Invoice.Calculations.Discount}}
        <tr><td>Diskon</td><td class="amount">-{{formatMoney .Invoice.Calculations.Discount}}</td></tr>
        {{end}}
        {{if .Invoice.Calculations.Tax}}
        <tr><td>Pajak</td><td class="amount">{{formatMoney .Invoice.Calculations.Tax}}</td></tr>
        {{end}}
        {{if .Invoice.Calculations.Shipping}}
        <tr><td>Ongkir</td><td class="amount">{{formatMoney .Invoice.Calculations.Shipping}}</td></tr>
        {{end}}
        <tr class="grand"><td>Total</td><td class="amount">{{formatMoney .Invoice.Calculations.GrandTotal}}</td></tr>
      </table>
    </div>

    {{with .Invoice.PaymentSchedule}}
    <div class="section">
      <div class="label">Jadwal Pembayaran</div>
      <table>
        <tr>
          <td>DP ({{formatPercent .DownPayment.Percentage}}%)</td>
          <td class="amount">{{formatMoney .DownPayment.Amount}}</td>
        </tr>
        <tr>
          <td>Sisa{{if .RemainingBalance.DueDate}} (jatuh tempo {{formatDate .RemainingBalance.DueDate}}){{end}}</td>
          <td class="amount">{{formatMoney .RemainingBalance.Amount}}</td>
        </tr>
      </table>
    </div>
    {{end}}

    {{if .Invoice.Notes.CustomNotes}}
    <div class="footer">{{.Invoice.Notes.CustomNotes}}</div>
    {{end}}
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney":   formatMoney,
		"formatDate":    formatDate,
		"formatPercent": formatPercent,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	if strings.TrimSpace(input.Business.Name) == "" {
		input.Business.Name = "Invoice"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatMoney renders an amount in rupiah with dot thousand separators,
// "Rp 1.250.000" style.
func formatMoney(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "Rp " + b.String()
	if negative {
		out = "-" + out
	}
	return out
}

func formatDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return "-"
		}
		return v.Format("2006-01-02")
	case *time.Time:
		if v == nil || v.IsZero() {
			return "-"
		}
		return v.Format("2006-01-02")
	default:
		return "-"
	}
}

func formatPercent(value float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(value, 'f', 2, 64), "0"), ".")
}
