package menu

// Default returns the Saluz Food House menu. This is build-time
// configuration data; edit here when the kitchen changes the card.
func Default() *Catalog {
	return New([]Category{
		{Name: "Adicional", Items: []Item{
			{Name: "Turbine seu Burguer (Adicional)", Price: 15.00, Description: "Adiciona fritas e Bebida ao seu pedido."},
			{Name: "Adicional de Acompanhamento (Elmo Salgado) - Molho de Carne", Price: 21.99, Description: "Opcional para Elmo Salgado"},
			{Name: "Adicional de Acompanhamento (Elmo Salgado) - Frango Empanado", Price: 23.99, Description: "Opcional para Elmo Salgado"},
			{Name: "Adicional de Acompanhamento (Elmo Salgado) - Escalope de Carne", Price: 24.99, Description: "Opcional para Elmo Salgado"},
		}},
		{Name: "Burguer", Items: []Item{
			{Name: "Trono de SaLuz", Price: 47.00, Description: "Pão brioche, molho SaLuz, barbecue, molho cheddar, onion rings, geleia de bacon e um super burguer."},
			{Name: "Fúria SaLuz", Price: 42.00, Description: "Pão brioche, molho SaLuz, molho cheddar, bacon, queijo mussarela e um super burguer."},
			{Name: "Templo dos Sabores", Price: 44.00, Description: "Pão brioche, molho SaLuz, cheddar, mussarela, molho pinneaple, bacon e um super burguer."},
			{Name: "Forja do Sabor", Price: 36.00, Description: "Pão brioche, molho SaLuz, molho cheddar, bacon, alface, salada, queijo mussarela e um super burguer."},
			{Name: "Escudo Crocante", Price: 39.00, Description: "Pão brioche, molho SaLuz, molho cheddar, bacon duplo e um super burguer."},
			{Name: "Paladino da Justiça", Price: 31.00, Description: "Pão brioche, molho SaLuz, molho pinneaple e um saboroso frango empanado."},
			{Name: "Supremo", Price: 34.00, Description: "Pão brioche, molho SaLuz, cheddar, alface, tomate e um super burguer."},
			{Name: "Plebeu", Price: 29.00, Description: "Pão brioche, molho SaLuz, queijo e um super burguer."},
		}},
		{Name: "Prato Principal", Items: []Item{
			{Name: "Rainha de SaLuz (M - Serve 3 Pessoas)", Price: 54.90, Serves: "3 pessoas", Description: "Carne de Paleta suína ao molho Provolone e molho Cheddar, com batata rústica e arroz branco."},
			{Name: "Rainha de SaLuz (G - Serve 5 Pessoas)", Price: 89.90, Serves: "5 pessoas", Description: "Carne de Paleta suína ao molho Provolone e molho Cheddar, com batata rústica e arroz branco."},
			{Name: "Defensor do Reino (M - Serve 3 Pessoas)", Price: 54.90, Serves: "3 pessoas", Description: "Corte de Paleta suína ao molho Barbecue, acompanhada de fritas e deliciosa farofa de bacon."},
			{Name: "Defensor do Reino (G - Serve 5 Pessoas)", Price: 79.90, Serves: "5 pessoas", Description: "Corte de Paleta suína ao molho Barbecue, acompanhada de fritas e deliciosa farofa de bacon."},
			{Name: "Armas do Reino (M - Serve 3 Pessoas)", Price: 54.90, Serves: "3 pessoas", Description: "Carne de Paleta suína ao molho Barbecue."},
			{Name: "Armas do Reino (G - Serve 5 Pessoas)", Price: 79.90, Serves: "5 pessoas", Description: "Carne de Paleta suína ao molho Barbecue."},
			{Name: "Cavaleiro Supremo (M - Serve 3 Pessoas)", Price: 79.00, Serves: "3 pessoas", Description: "Carne empanada à parmegiana ao molho vermelho e molho provolone, com fritas e arroz branco."},
			{Name: "Cavaleiro Supremo (G - Serve 5 Pessoas)", Price: 119.00, Serves: "5 pessoas", Description: "Carne empanada à parmegiana ao molho vermelho e molho provolone, com fritas e arroz branco."},
			{Name: "Cavaleiro da Luz (M - Serve 3 Pessoas)", Price: 79.00, Serves: "3 pessoas", Description: "Carne empanada à parmegiana ao molho provolone, com fritas e arroz branco."},
			{Name: "Cavaleiro da Luz (G - Serve 5 Pessoas)", Price: 119.00, Serves: "5 pessoas", Description: "Carne empanada à parmegiana ao molho provolone, com fritas e arroz branco."},
		}},
		{Name: "Prato Individual", Items: []Item{
			{Name: "Elmo Salgado (Mac'N'Cheese)", Price: 24.99, Description: "Mac'N'Cheese. Escolha entre molho cheddar ou molho provolone."},
			{Name: "Parmegiana Individual", Price: 24.99, Description: "Carne à Parmegiana. Acompanha fritas e arroz branco. Escolha entre carne bovina ou frango."},
		}},
		{Name: "Para Compartilhar", Items: []Item{
			{Name: "Fortaleza do Rei (Batata-Recheada - M)", Price: 79.99, Serves: "2 pessoas", Description: "Suculentas tiras de carne, bacon, queijo mussarela, molho cheddar, cream cheese, cebola caramelizada, picles e molho SaLuz."},
			{Name: "Fortaleza do Rei (Batata-Recheada - G)", Price: 109.99, Serves: "3 pessoas", Description: "Suculentas tiras de carne, bacon, queijo mussarela, molho cheddar, cream cheese, cebola caramelizada, picles e molho SaLuz."},
			{Name: "Divino (Tiras de Frango - Individual)", Price: 25.00, Serves: "1 pessoa", Description: "Tiras de Frango empanadas. Acompanha molho SaLuz e Cheddar."},
		}},
		{Name: "Porções", Items: []Item{
			{Name: "Fritas ao Provolone e Parofa de Bacon", Price: 32.90},
			{Name: "Queijo Coalho Empanado (10 unidades)", Price: 35.90},
			{Name: "Fritas McCain 300g", Price: 19.90},
			{Name: "Fritas McCain 500g", Price: 24.90},
			{Name: "Porção Extra de Arroz", Price: 10.00},
			{Name: "Porção Extra de Salada", Price: 8.00},
		}},
		{Name: "Bebidas", Items: []Item{
			{Name: "Água Mineral com Gás 500ml", Price: 5.00},
			{Name: "Água Mineral sem Gás 500ml", Price: 5.00},
			{Name: "H2O", Price: 7.00},
			{Name: "Refrigerante LATA 350ml (Coca-Cola, Guaraná, Soda, Fanta, etc.)", Price: 7.00},
			{Name: "Suco de Limão", Price: 10.00},
			{Name: "Suco de Morango", Price: 12.00},
			{Name: "Red Bull", Price: 15.00},
		}},
		{Name: "Chopp e Cervejas", Items: []Item{
			{Name: "Chopp Imigração 300ml", Price: 12.00},
			{Name: "Chopp Imigração 500ml", Price: 16.00},
			{Name: "Chopp Brahma 300ml", Price: 12.00},
			{Name: "Chopp Brahma 500ml", Price: 16.00},
			{Name: "Heineken long neck", Price: 18.00},
			{Name: "Stella long neck", Price: 18.00},
			{Name: "Corona long neck", Price: 12.00},
			{Name: "Spaten long neck", Price: 12.00},
			{Name: "Skol Beats", Price: 15.00},
		}},
	})
}
