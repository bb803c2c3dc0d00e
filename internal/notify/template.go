package notify

import (
	"bytes"
	"html/template"
)

var bodyTemplate = template.Must(template.New("transfer-received").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #DC2626; color: white; padding: 20px; text-align: center; }
    .content { background-color: #f9f9f9; padding: 20px; margin: 20px 0; }
    .section { margin-bottom: 20px; }
    .label { font-weight: bold; color: #555; }
    table { width: 100%; border-collapse: collapse; margin: 10px 0; }
    th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
    th { background-color: #f3f4f6; font-weight: 600; }
    .footer { text-align: center; color: #666; font-size: 12px; margin-top: 20px; }
    .alert { background-color: #FEF3C7; border-left: 4px solid #F59E0B; padding: 12px; margin: 10px 0; }
    .ok { background-color: #D1FAE5; padding: 12px; border-radius: 4px; color: #065F46; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>{{if .IsTest}}Test Email{{else}}Transfer Received{{end}}</h1>
      <p>Stock Control System</p>
    </div>
    <div class="content">
      {{if .IsTest}}
      <div class="alert">
        <strong>This is a test email.</strong><br>
        Your email integration is working. You will receive similar notifications when transfers are marked as received.
      </div>
      {{end}}
      <div class="section">
        <h2>Transfer Details</h2>
        <p><span class="label">Transfer ID:</span> {{.Transfer.ID}}</p>
        <p><span class="label">From:</span> {{.FromLocation}}</p>
        <p><span class="label">To:</span> {{.ToLocation}}</p>
        <p><span class="label">Driver:</span> {{.Transfer.DriverName}}</p>
        <p><span class="label">Vehicle:</span> {{.Transfer.VehicleReg}}</p>
        {{if .Transfer.ReceivedAt}}<p><span class="label">Received At:</span> {{.Transfer.ReceivedAt.Format "02 Jan 2006 15:04"}}</p>{{end}}
      </div>
      <div class="section">
        <h3>Products Transferred</h3>
        <table>
          <tr><th>Code</th><th>Name</th><th>Quantity</th><th>Unit</th></tr>
          {{range .Transfer.Items}}
          <tr><td>{{.ProductCode}}</td><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{.Unit}}</td></tr>
          {{end}}
        </table>
      </div>
      {{if .Transfer.Shortages}}
      <div class="section">
        <h3>Shortages Reported</h3>
        <table>
          <tr><th>Code</th><th>Name</th><th>Quantity Short</th></tr>
          {{range .Transfer.Shortages}}
          <tr><td>{{.ProductCode}}</td><td>{{.ProductName}}</td><td>{{.QuantityShort}}</td></tr>
          {{end}}
        </table>
      </div>
      {{end}}
      {{if .Transfer.Damages}}
      <div class="section">
        <h3>Damages Reported</h3>
        <table>
          <tr><th>Code</th><th>Name</th><th>Quantity Damaged</th><th>Reason</th></tr>
          {{range .Transfer.Damages}}
          <tr><td>{{.ProductCode}}</td><td>{{.ProductName}}</td><td>{{.QuantityDamaged}}</td><td>{{.Reason}}</td></tr>
          {{end}}
        </table>
      </div>
      {{end}}
      {{if and (not .Transfer.Shortages) (not .Transfer.Damages) (not .IsTest)}}
      <div class="section ok">
        <p><strong>All products received in full with no damages.</strong></p>
      </div>
      {{end}}
    </div>
    <div class="footer">
      <p>This is an automated notification from the Stock Control System.</p>
      <p>Do not reply to this email.</p>
    </div>
  </div>
</body>
</html>
`))

func renderBody(ev Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, ev); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
