package llm

// SystemInstruction frames the model as an invoice examiner.
const SystemInstruction = `You are an invoice examiner. Your job is to interpret the text of an invoice and extract the information from the document accurately and precisely.`

// ExtractionPrompt pins the reply to three labeled fields so the reply parser
// can extract them with patterns.
const ExtractionPrompt = `Extract the company name, invoice date, and total amount from the invoice.
Only return the required information without adding extra words or sentences.
The output should strictly follow this format:
Company name: <company_name> Invoice date: <invoice_date> Total amount: <total_amount>

Ensure:
- The company name is enclosed within ` + "`Company name:`" + `
- The invoice date is enclosed within ` + "`Invoice date:`" + `
- The total amount is enclosed within ` + "`Total amount:`" + `
- No extra text or comments are included.
- Use the exact field names and order as provided above.`

// BuildPrompt packages the extracted invoice text with the extraction
// instructions into one user prompt.
func BuildPrompt(invoiceText string) string {
	return invoiceText + "\n\n" + ExtractionPrompt
}
