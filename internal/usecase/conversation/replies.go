package conversation

import (
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
)

const (
	deliveryWindow = "30-45 minutes"

	helpText = "I didn't understand that. Here are some things you can do:\n\n" +
		"🍕 Type 'MENU' to see our food menu\n" +
		"🔢 Type a food code (like F001) to order\n" +
		"❓ Type 'HELP' for assistance\n\n" +
		"What would you like to do?"

	attachmentText = "Thanks for the attachment! Please type 'MENU' to see our food options or use a food code to place an order."

	askPhoneText = "Great! Now please provide your phone number for delivery confirmation:"

	orderAgainText = "\n\nType 'menu' to see our full menu or order again! 🍕🍔"
)

func welcomeText() string {
	var b strings.Builder
	b.WriteString("🍕 Welcome to our Food Delivery Bot! 🍔\n\n")
	b.WriteString("I'm here to help you order delicious food quickly and easily.\n\n")
	b.WriteString("🔢 How to order:\n")
	b.WriteString("1. Type 'MENU' to see our full menu\n")
	b.WriteString("2. Type the food code (like F001) to select an item\n")
	b.WriteString("3. Provide your delivery address\n")
	b.WriteString("4. Confirm your phone number\n")
	b.WriteString("5. Enjoy your meal!\n\n")
	b.WriteString("💳 Payment: Cash on Delivery\n")
	fmt.Fprintf(&b, "⏰ Delivery: %s\n\n", deliveryWindow)
	b.WriteString("Type 'MENU' to get started! 🎉")
	return b.String()
}

func menuText(items []*domain.Product) string {
	var b strings.Builder
	b.WriteString("🍽️ OUR DELICIOUS MENU 🍽️\n\n")
	for _, p := range items {
		fmt.Fprintf(&b, "🔢 %s - %s\n", domain.NormalizeCode(p.Code), p.Name)
		fmt.Fprintf(&b, "💰 $%s\n", p.Price.StringFixed(2))
		if p.Description != "" {
			fmt.Fprintf(&b, "📝 %s\n", p.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString("💡 How to order:\n")
	b.WriteString("Just type the food code (e.g., F001) to place your order!\n\n")
	b.WriteString("💳 Payment: Cash on Delivery\n")
	fmt.Fprintf(&b, "🚚 Free delivery in %s!", deliveryWindow)
	return b.String()
}

func selectionText(item *domain.SelectedItem) string {
	var b strings.Builder
	b.WriteString("🍽️ Great choice! You selected:\n\n")
	fmt.Fprintf(&b, "%s - $%s\n", item.Name, item.Price.StringFixed(2))
	if item.Description != "" {
		b.WriteString(item.Description + "\n")
	}
	b.WriteString("\nTo complete your order, please provide your delivery address:")
	return b.String()
}

func cartReceivedText(cart *domain.Cart) string {
	var b strings.Builder
	b.WriteString("🛒 CART ORDER RECEIVED 🛒\n\n")
	for _, item := range cart.Items {
		fmt.Fprintf(&b, "• %s\n", item.Name)
		fmt.Fprintf(&b, "  Qty: %d × %s %s\n", item.Quantity, item.UnitPrice.StringFixed(2), cart.Currency)
		fmt.Fprintf(&b, "  Subtotal: %s %s\n\n", item.Subtotal().StringFixed(2), cart.Currency)
	}
	fmt.Fprintf(&b, "💰 Total: %s %s\n\n", cart.Total().StringFixed(2), cart.Currency)
	if cart.Note != "" {
		fmt.Fprintf(&b, "📝 Note: %s\n\n", cart.Note)
	}
	b.WriteString("📍 Next Steps:\n")
	b.WriteString("Please provide your delivery address to complete the order.\n\n")
	fmt.Fprintf(&b, "🚚 Estimated delivery: %s\n", deliveryWindow)
	b.WriteString("💳 Payment: Cash on Delivery")
	return b.String()
}

func confirmationText(s *domain.Session, order *domain.Order) string {
	var b strings.Builder
	if s.Cart != nil {
		b.WriteString("🎉 Cart Order Confirmed! 🎉\n")
		fmt.Fprintf(&b, "📋 Order #%s\n\n", order.OrderNumber)
		b.WriteString("🛒 Order Details:")
		for _, item := range s.Cart.Items {
			fmt.Fprintf(&b, "\n• %s (Qty: %d)\n  %s × %d = %s %s",
				item.Name, item.Quantity, item.UnitPrice.StringFixed(2), item.Quantity,
				item.Subtotal().StringFixed(2), order.Currency)
		}
		fmt.Fprintf(&b, "\n\n💰 Total: %s %s", order.TotalAmount.StringFixed(2), order.Currency)
		if s.Cart.Note != "" {
			fmt.Fprintf(&b, "\n📝 Note: %s", s.Cart.Note)
		}
	} else {
		b.WriteString("🎉 Order Confirmed! 🎉\n")
		fmt.Fprintf(&b, "📋 Order #%s\n\n", order.OrderNumber)
		b.WriteString("📝 Order Details:\n")
		fmt.Fprintf(&b, "• Item: %s\n", s.SelectedItem.Name)
		fmt.Fprintf(&b, "• Price: $%s", order.TotalAmount.StringFixed(2))
		if s.SelectedItem.Description != "" {
			fmt.Fprintf(&b, "\n• Description: %s", s.SelectedItem.Description)
		}
	}
	writeDeliveryDetails(&b, s)
	b.WriteString("\n\nThank you for your order! Our delivery team will contact you shortly.")
	b.WriteString(orderAgainText)
	return b.String()
}

// unconfirmedText answers when the order could not be stored. It carries no order number.
func unconfirmedText(s *domain.Session) string {
	var b strings.Builder
	b.WriteString("📨 Order Received, Not Yet Confirmed\n\n")
	b.WriteString("We got your order details, but we could not confirm the order in our system right now. ")
	b.WriteString("Please keep this conversation until our team confirms it.")
	writeDeliveryDetails(&b, s)
	b.WriteString("\n\nOur team will contact you shortly to confirm your order.")
	b.WriteString(orderAgainText)
	return b.String()
}

func writeDeliveryDetails(b *strings.Builder, s *domain.Session) {
	fmt.Fprintf(b, "\n\n📍 Delivery Address: %s", s.Address)
	fmt.Fprintf(b, "\n📞 Contact: %s", s.Phone)
	b.WriteString("\n💳 Payment Method: Cash on Delivery")
	fmt.Fprintf(b, "\n⏰ Estimated delivery time: %s", deliveryWindow)
}
