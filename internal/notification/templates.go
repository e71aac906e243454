package notification

import "html/template"

var customerOrderTmpl = template.Must(template.New("customer_order").Parse(`<h2>Thank you for your order, {{.Order.FullName}}!</h2>
<p>{{.Store}} has received your order <strong>#{{.Order.ID}}</strong> and will contact you soon.</p>
<table cellpadding="6" style="border-collapse:collapse">
<tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th></tr>
{{range .Order.Cart}}<tr><td>{{.Name}}{{if .Option}} ({{.Option}}){{end}}</td><td align="right">{{.Quantity}}</td><td align="right">{{printf "%.2f" .Price}}</td></tr>
{{end}}</table>
<p><strong>Total: {{printf "%.2f" .Order.Total}}</strong></p>
<p>Delivery to: {{.Order.Address}}, {{.Order.City}} {{.Order.Pincode}}</p>
`))

var operatorOrderTmpl = template.Must(template.New("operator_order").Parse(`<h2>New order #{{.Order.ID}}</h2>
<ul>
<li>Name: {{.Order.FullName}}</li>
<li>Email: {{.Order.Email}}</li>
<li>Phone: {{.Order.Phone}}</li>
<li>Address: {{.Order.Address}}</li>
{{if .Order.Landmark}}<li>Landmark: {{.Order.Landmark}}</li>
{{end}}<li>City: {{.Order.City}}</li>
<li>Pincode: {{.Order.Pincode}}</li>
<li>Payment: {{.Order.PaymentMethod}}</li>
<li>Status: {{.Order.Status}}</li>
<li>Placed: {{.Order.CreatedAt.Format "2006-01-02 15:04 MST"}}</li>
</ul>
<table cellpadding="6" border="1" style="border-collapse:collapse">
<tr><th>Item</th><th>Option</th><th>Qty</th><th>Price</th></tr>
{{range .Order.Cart}}<tr><td>{{.Name}}</td><td>{{.Option}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Price}}</td></tr>
{{end}}</table>
<p><strong>Total: {{printf "%.2f" .Order.Total}}</strong></p>
{{if .ScreenshotURL}}<p>Payment screenshot:</p>
<p><img src="{{.ScreenshotURL}}" alt="payment screenshot" style="max-width:480px"></p>
{{else if .Order.Screenshot}}<p>Payment screenshot stored as {{.Order.Screenshot.Handle}}.</p>
{{end}}`))

var contactTmpl = template.Must(template.New("contact").Parse(`<h2>New contact message</h2>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Message}}</p>
`))
