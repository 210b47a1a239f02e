package orchestrator

// systemPrompt frames the assistant for the primary model. The assistant
// always answers in the user's language; the store copy itself is Spanish.
const systemPrompt = `Eres el asistente virtual de una tienda online de colchones y productos de descanso.

Tu trabajo:
- Ayudar a elegir colchón, almohada o base según cómo duerme el cliente.
- Responder dudas sobre envíos, devoluciones, garantías y formas de pago usando solo la información del contexto.
- Cuando una herramienta devuelva resultados, apóyate en ellos; no inventes productos, precios ni plazos.

Normas:
- Responde en el idioma del cliente.
- Sé breve, cercano y concreto. Nada de párrafos largos.
- Si no tienes la información, dilo claramente y ofrece dejar sus datos para que un especialista le llame.`

// offTopicReply is the canned refusal for messages unrelated to the store.
// The primary model is never called for these.
const offTopicReply = `Lo siento, solo puedo ayudarte con dudas sobre descanso: colchones, almohadas, bases y los servicios de nuestra tienda. ¿Hay algo de eso en lo que te pueda ayudar?`

// fallbackReply is the safety net when the model or a tool fails. It keeps
// the conversation alive and captures the lead.
const fallbackReply = `Ahora mismo no puedo responderte a eso. Si me dejas un teléfono o un correo, uno de nuestros especialistas en descanso te contactará en breve para ayudarte.`

// unknownToolReply is returned when the model requests a tool that does not
// exist.
const unknownToolReply = `No se pudo procesar la solicitud.`

// defaultRecommendation is the product copy used when no recommendation
// engine is wired in.
const defaultRecommendation = `Para la mayoría de durmientes recomendamos un colchón viscoelástico de firmeza media-alta con núcleo de alta densidad: se adapta al cuerpo, reparte bien el peso y funciona tanto para dormir solo como en pareja. Si nos dices tu peso, altura y postura habitual, afinamos la recomendación.`

// noResultsReply signals an empty tool result without inventing content.
const noResultsReply = `No he encontrado resultados para esa búsqueda en nuestro catálogo.`
