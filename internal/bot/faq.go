package bot

import "strings"

// faqEntry maps one canned intent to its trigger phrases and response.
type faqEntry struct {
	Intent   string
	Triggers []string
	Response string
}

// faqEntries is checked in order; the first match wins. Policy intents
// come before greeting/goodbye so that "hi, can I return this?" gets
// the return policy, not a greeting.
var faqEntries = []faqEntry{
	{
		Intent: "return_policy",
		Triggers: []string{
			"return policy", "policy on return", "can i return",
			"how to return", "policy for returns", "returned items",
		},
		Response: `Our return policy is as follows:

1. Items can be returned within 30 days of delivery for a full refund.
2. Products must be in original packaging and unused condition.
3. For electronics, returns are accepted within 15 days and must include all accessories.
4. Shipping costs for returns are covered by the customer unless the item was defective.
5. Refunds are processed within 5-7 business days after we receive the returned item.

Would you like more information about a specific aspect of our return policy?`,
	},
	{
		Intent: "shipping_policy",
		Triggers: []string{
			"shipping policy", "delivery policy", "shipping time",
			"how long shipping", "shipping cost", "how long does shipping",
			"shipping take",
		},
		Response: `Our shipping policy:

1. Standard shipping (5-7 business days): Free for orders over $35, otherwise $4.99
2. Express shipping (2-3 business days): $9.99
3. Next-day delivery (where available): $19.99
4. International shipping available to select countries

Delivery times may vary based on your location and product availability. You can track your shipment using the order ID provided in your confirmation email.

Do you have any other questions about shipping?`,
	},
	{
		Intent: "payment_methods",
		Triggers: []string{
			"payment method", "payment option", "how to pay",
			"accept payment", "credit card", "debit card", "paypal",
		},
		Response: `We accept the following payment methods:

1. Credit cards (Visa, Mastercard, American Express, Discover)
2. Debit cards
3. PayPal
4. Store credit/gift cards
5. Apple Pay and Google Pay (on mobile)

All payment information is securely processed and encrypted. We do not store your full credit card details on our servers.

Is there anything specific about our payment options you'd like to know?`,
	},
	{
		Intent: "warranty",
		Triggers: []string{
			"warranty", "guarantee", "product warranty",
			"warranty policy", "warranty coverage",
		},
		Response: `Our warranty policy:

1. Most products come with a standard 1-year manufacturer's warranty.
2. Electronics typically include a 90-day warranty against defects.
3. Extended warranties are available for purchase on select items.
4. Warranty claims require proof of purchase and the original packaging if possible.
5. Warranties cover manufacturing defects but not damage from misuse or accidents.

To make a warranty claim, please contact our customer service with your order details and a description of the issue.

Do you need help with a specific warranty claim?`,
	},
	{
		Intent: "cancellation",
		Triggers: []string{
			"cancel order", "cancellation policy", "how to cancel",
			"cancel my purchase", "stop my order",
		},
		Response: `Order cancellation information:

1. Orders can be cancelled within 1 hour of placement with no penalty.
2. Orders that haven't shipped can usually be cancelled through your account dashboard.
3. For orders that have already shipped, you'll need to wait for delivery and then follow the return process.
4. Cancellation requests are typically processed within 24 hours.
5. Refunds for cancelled orders are issued to the original payment method within 3-5 business days.

To cancel an order, please log into your account or provide your order ID.

Would you like to cancel a specific order?`,
	},
	{
		Intent: "gift_cards",
		Triggers: []string{
			"gift card", "gift certificate", "store credit",
			"gift card balance", "redeem gift card",
		},
		Response: `Gift card information:

1. Gift cards are available in amounts from $10 to $500.
2. Digital gift cards are delivered via email within 24 hours of purchase.
3. Physical gift cards can be shipped to any address (standard shipping rates apply).
4. Gift cards do not expire and have no maintenance fees.
5. Lost or stolen gift cards cannot be replaced unless registered.

To check your gift card balance, please visit our website and enter your gift card number and PIN.

Can I help you purchase a gift card or check a balance?`,
	},
	{
		Intent: "contact_info",
		Triggers: []string{
			"contact info", "contact information", "phone number",
			"email address", "contact us", "customer service contact",
		},
		Response: `Our contact information:

Customer Service Hours:
- Monday to Friday: 8:00 AM - 8:00 PM EST
- Saturday: 9:00 AM - 6:00 PM EST
- Sunday: 10:00 AM - 5:00 PM EST

Phone: 1-800-123-4567
Email: support@ecommerce-example.com
Live Chat: Available on our website during business hours

For the fastest response, please have your order number ready when contacting us.

Would you like me to connect you with a customer service representative?`,
	},
	{
		Intent: "greeting",
		Triggers: []string{
			"hello", "hi", "hey", "greetings", "good morning",
			"good afternoon", "good evening",
		},
		Response: `Hello! Welcome to our e-commerce support. How can I help you today? You can ask about order status, return policies, shipping information, or connect with a human representative.`,
	},
	{
		Intent: "goodbye",
		Triggers: []string{
			"thank you", "thanks", "bye", "goodbye", "see you", "that's all",
		},
		Response: `You're welcome! Thank you for contacting our support. If you have any other questions in the future, don't hesitate to reach out. Have a great day!`,
	},
}

// triggerMatches reports whether a trigger fires on the lowercased
// input. Multi-word triggers match as substrings; single words match
// whole tokens only, so "hi" does not fire inside "shipping".
func triggerMatches(lower, trigger string) bool {
	if strings.ContainsRune(trigger, ' ') || strings.ContainsRune(trigger, '\'') {
		return strings.Contains(lower, trigger)
	}
	start := -1
	for i, r := range lower {
		alnum := isAlnum(r)
		if alnum && start < 0 {
			start = i
		}
		if !alnum && start >= 0 {
			if lower[start:i] == trigger {
				return true
			}
			start = -1
		}
	}
	return start >= 0 && lower[start:] == trigger
}

// MatchFAQ returns the canned response for the first FAQ intent whose
// triggers match, checked before any paid collaborator is invoked.
// It is a pure function over static data.
func MatchFAQ(text string) (string, bool) {
	_, resp, ok := MatchFAQIntent(text)
	return resp, ok
}

// MatchFAQIntent is MatchFAQ but also reports which intent fired,
// for metrics.
func MatchFAQIntent(text string) (intent, response string, ok bool) {
	lower := strings.ToLower(text)
	for _, e := range faqEntries {
		for _, trig := range e.Triggers {
			if triggerMatches(lower, trig) {
				return e.Intent, e.Response, true
			}
		}
	}
	return "", "", false
}
