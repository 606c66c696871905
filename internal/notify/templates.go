package notify

import "fmt"

func confirmationMessage(name string) string {
	return fmt.Sprintf("Hi %s! Your order is confirmed and already being prepared.", name)
}

func deliveryMessage(name string) string {
	return fmt.Sprintf("%s, your order is out for delivery and should arrive shortly!", name)
}
